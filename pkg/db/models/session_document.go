package models

import (
	"encoding/json"
	"time"
)

// SessionDocument holds the current authenticated identity, separate from
// the ledger document so signing out never rewrites warehouse state.
type SessionDocument struct {
	Key       string          `gorm:"column:key;primaryKey"`
	Payload   json.RawMessage `gorm:"column:payload;not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default GORM pluralization.
func (SessionDocument) TableName() string {
	return "session_documents"
}
