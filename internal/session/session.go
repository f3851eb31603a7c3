// Package session owns the single database transaction backing an
// interactive run. Work accumulates in one long-lived transaction; a
// savepoint taken before each menu iteration bounds the blast radius of a
// failure, and commit or rollback immediately reopen a fresh transaction so
// the connection behaves like one with autocommit disabled.
package session

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// MenuSavepoint is the savepoint name taken before each top-level menu
// iteration.
const MenuSavepoint = "menu_iteration"

type Session struct {
	root   *gorm.DB
	tx     *gorm.DB
	id     uuid.UUID
	log    zerolog.Logger
	closed bool
}

// Begin opens the session transaction.
func Begin(db *gorm.DB, log zerolog.Logger) (*Session, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin session transaction: %w", tx.Error)
	}
	s := &Session{
		root: db,
		tx:   tx,
		id:   uuid.New(),
		log:  log,
	}
	s.log.Debug().Str("session_id", s.id.String()).Msg("session started")
	return s, nil
}

// ID identifies this session in log events and generated documents.
func (s *Session) ID() uuid.UUID { return s.id }

// DB returns the handle for the current transaction.
func (s *Session) DB() *gorm.DB { return s.tx }

// Savepoint establishes (or redefines) a named rollback point inside the
// current transaction.
func (s *Session) Savepoint(name string) error {
	if s.closed {
		return fmt.Errorf("session closed")
	}
	return s.tx.SavePoint(name).Error
}

// RollbackTo discards all work since the named savepoint. Work committed
// before the savepoint is untouched.
func (s *Session) RollbackTo(name string) error {
	if s.closed {
		return fmt.Errorf("session closed")
	}
	return s.tx.RollbackTo(name).Error
}

// Commit makes all accumulated work durable and opens a fresh transaction
// for the work that follows.
func (s *Session) Commit() error {
	if s.closed {
		return fmt.Errorf("session closed")
	}
	if err := s.tx.Commit().Error; err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return s.renew()
}

// Rollback discards all accumulated work and opens a fresh transaction.
func (s *Session) Rollback() error {
	if s.closed {
		return fmt.Errorf("session closed")
	}
	if err := s.tx.Rollback().Error; err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return s.renew()
}

// renew opens the next transaction and re-establishes the menu savepoint,
// so a rollback target exists even when an iteration commits midway.
func (s *Session) renew() error {
	tx := s.root.Begin()
	if tx.Error != nil {
		s.closed = true
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}
	if err := tx.SavePoint(MenuSavepoint).Error; err != nil {
		s.closed = true
		return fmt.Errorf("re-establish savepoint: %w", err)
	}
	s.tx = tx
	return nil
}

// Close discards any unresolved work and releases the transaction. Exit
// never performs an implicit commit; whatever the operator chose to save was
// committed by the prompts that came before.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if err := s.tx.Rollback().Error; err != nil {
		s.log.Warn().Err(err).Str("session_id", s.id.String()).Msg("closing rollback failed")
	}
	s.log.Debug().Str("session_id", s.id.String()).Msg("session closed")
}
