package models

import (
	"encoding/json"
	"time"
)

// LedgerDocument holds one whole serialized ledger under a versioned key.
// Saves replace the entire payload; there are no partial updates.
type LedgerDocument struct {
	Key       string          `gorm:"column:key;primaryKey"`
	Payload   json.RawMessage `gorm:"column:payload;not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default GORM pluralization.
func (LedgerDocument) TableName() string {
	return "ledger_documents"
}
