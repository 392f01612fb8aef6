// Package repository is the Entity Store: gorm-backed persistence for users,
// posts, likes and comments.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when a lookup by id matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)

// PageRequest selects one zero-based page of a newest-first listing.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) offset() int { return p.Page * p.Size }

// translate maps gorm sentinel errors onto the package's own.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// quietDuplicates forwards to the wrapped logger but reports unique-index
// violations as successful statements. Callers that expect them map the
// error to a conflict, so they are not store faults.
type quietDuplicates struct {
	gormlogger.Interface
}

func (l quietDuplicates) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return quietDuplicates{l.Interface.LogMode(level)}
}

func (l quietDuplicates) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = nil
	}
	l.Interface.Trace(ctx, begin, fc, err)
}
