package ledger

import (
	"context"
	"encoding/json"
	stdErrors "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dcastillo-dev/depotops-backend/pkg/db"
	"github.com/dcastillo-dev/depotops-backend/pkg/db/models"
	"github.com/dcastillo-dev/depotops-backend/pkg/errors"
	"github.com/dcastillo-dev/depotops-backend/pkg/logger"
)

// Store is the single injected handle through which the ledger document and
// the session identity are loaded and saved. Saves replace the whole
// document; there are no partial updates or transactions across saves.
type Store interface {
	Load(ctx context.Context) (*Ledger, error)
	Save(ctx context.Context, l *Ledger) error
	LoadSession(ctx context.Context) (*Session, error)
	SaveSession(ctx context.Context, s *Session) error
	ClearSession(ctx context.Context) error
}

// StoreParams configure the document store.
type StoreParams struct {
	Client      *db.Client
	Logger      *logger.Logger
	DocumentKey string
	SessionKey  string
}

type documentStore struct {
	client      *db.Client
	logg        *logger.Logger
	documentKey string
	sessionKey  string
}

// NewStore returns a Store backed by the local document tables.
func NewStore(params StoreParams) (Store, error) {
	if params.Client == nil {
		return nil, errors.New(errors.CodeInternal, "db client required")
	}
	if params.DocumentKey == "" || params.SessionKey == "" {
		return nil, errors.New(errors.CodeInternal, "document and session keys required")
	}
	return &documentStore{
		client:      params.Client,
		logg:        params.Logger,
		documentKey: params.DocumentKey,
		sessionKey:  params.SessionKey,
	}, nil
}

// Load reads and decodes the ledger document. A missing row surfaces as
// CodeNotFound and a corrupt payload as CodeCorruptDoc; callers treat both
// as "no data yet" and reseed rather than erroring (load fails soft).
func (s *documentStore) Load(ctx context.Context) (*Ledger, error) {
	var doc models.LedgerDocument
	err := s.client.DB().WithContext(ctx).
		Where("key = ?", s.documentKey).
		First(&doc).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "ledger document absent")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading ledger document")
	}

	var ledger Ledger
	if err := json.Unmarshal(doc.Payload, &ledger); err != nil {
		s.warn(ctx, "ledger document is corrupt; treating as absent")
		return nil, errors.Wrap(errors.CodeCorruptDoc, err, "decoding ledger document")
	}
	if ledger.Credentials == nil {
		ledger.Credentials = map[string]Credential{}
	}
	return &ledger, nil
}

// Save serializes the whole ledger and replaces the stored document. The
// upsert runs in a transaction: replace-on-save must be all or nothing.
func (s *documentStore) Save(ctx context.Context, l *Ledger) error {
	payload, err := json.Marshal(l)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding ledger document")
	}
	doc := models.LedgerDocument{Key: s.documentKey, Payload: payload}
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).Create(&doc).Error
	})
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "saving ledger document")
	}
	return nil
}

func (s *documentStore) LoadSession(ctx context.Context) (*Session, error) {
	var doc models.SessionDocument
	err := s.client.DB().WithContext(ctx).
		Where("key = ?", s.sessionKey).
		First(&doc).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "no active session")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading session")
	}
	var session Session
	if err := json.Unmarshal(doc.Payload, &session); err != nil {
		s.warn(ctx, "session document is corrupt; treating as signed out")
		return nil, errors.Wrap(errors.CodeCorruptDoc, err, "decoding session")
	}
	return &session, nil
}

func (s *documentStore) SaveSession(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding session")
	}
	doc := models.SessionDocument{Key: s.sessionKey, Payload: payload}
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).Create(&doc).Error
	})
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "saving session")
	}
	return nil
}

func (s *documentStore) ClearSession(ctx context.Context) error {
	err := s.client.DB().WithContext(ctx).
		Where("key = ?", s.sessionKey).
		Delete(&models.SessionDocument{}).Error
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "clearing session")
	}
	return nil
}

func (s *documentStore) warn(ctx context.Context, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(ctx, msg)
}

// Absent reports whether a load error means "no usable document": either
// nothing stored yet or a payload that cannot be decoded.
func Absent(err error) bool {
	return errors.HasCode(err, errors.CodeNotFound) || errors.HasCode(err, errors.CodeCorruptDoc)
}
