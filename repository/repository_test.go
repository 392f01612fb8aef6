package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// traceRecorder keeps the error of every traced statement.
type traceRecorder struct {
	gormlogger.Interface
	errs []error
}

func (r *traceRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }

func (r *traceRecorder) Trace(_ context.Context, _ time.Time, _ func() (string, int64), err error) {
	r.errs = append(r.errs, err)
}

func TestQuietDuplicatesHidesOnlyDuplicateKeys(t *testing.T) {
	rec := &traceRecorder{}
	var l gormlogger.Interface = quietDuplicates{rec}
	l = l.LogMode(gormlogger.Warn)
	sql := func() (string, int64) { return "INSERT INTO likes ...", 0 }

	l.Trace(context.Background(), time.Now(), sql, gorm.ErrDuplicatedKey)
	l.Trace(context.Background(), time.Now(), sql, errors.New("disk I/O error"))

	assert.Len(t, rec.errs, 2)
	assert.NoError(t, rec.errs[0])
	assert.EqualError(t, rec.errs[1], "disk I/O error")
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrDuplicate)
}
