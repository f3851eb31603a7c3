package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no row. Callers surface it
	// as an operator-visible "not found" notice, never as a crash.
	ErrNotFound = errors.New("record not found")

	// ErrNotFinalised guards direct completion-date updates on a project whose
	// completion date is still unset. The store is the only layer that knows
	// the current value, so the guard lives here.
	ErrNotFinalised = errors.New("project has not been finalised")
)

// Conn supplies the gorm handle for the current unit of work. The interactive
// session replaces its transaction after every commit or rollback, so
// repositories resolve the handle per call instead of capturing one.
type Conn interface {
	DB() *gorm.DB
}

type dbConn struct {
	db *gorm.DB
}

func (c dbConn) DB() *gorm.DB { return c.db }

// NewConn wraps a fixed gorm handle as a Conn.
func NewConn(db *gorm.DB) Conn { return dbConn{db: db} }
