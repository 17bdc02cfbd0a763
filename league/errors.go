package league

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"
)

// Error taxonomy surfaced to the transport layer. Services classify
// store failures at the transaction boundary and log the driver detail
// server-side only.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("record not found")
	ErrConflict    = errors.New("duplicate entry not allowed")
	ErrReferential = errors.New("referenced record does not exist")
	ErrUnavailable = errors.New("store unavailable")
	ErrInternal    = errors.New("internal error")
)

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// classify maps a store error onto the taxonomy. Driver message matching
// covers both the sqlite and postgres dialects.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrReferential),
		errors.Is(err, ErrUnavailable):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded):
		slog.Error("store operation exceeded its deadline : " + err.Error())
		return ErrUnavailable
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key"):
		slog.Warn("store rejected duplicate key : " + err.Error())
		return ErrConflict
	case strings.Contains(msg, "foreign key constraint") || strings.Contains(msg, "violates foreign key"):
		slog.Warn("store rejected missing reference : " + err.Error())
		return ErrReferential
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "connect: "):
		slog.Error("store unreachable : " + err.Error())
		return ErrUnavailable
	}
	slog.Error("unclassified store error : " + err.Error())
	return ErrInternal
}
