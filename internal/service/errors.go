package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/event-ticketing/internal/repository"
)

// Error kinds returned by the services.  Concrete errors wrap one of these
// so handlers can map them with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrTransient  = errors.New("temporarily unavailable")
)

// MySQL server error numbers the services react to.
const (
	mysqlDuplicateEntry   = 1062 // ER_DUP_ENTRY
	mysqlLockWaitTimeout  = 1205 // ER_LOCK_WAIT_TIMEOUT
	mysqlDeadlockDetected = 1213 // ER_LOCK_DEADLOCK
)

func isMySQLError(err error, number uint16) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == number
}

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// translate maps repository and driver errors onto the service kinds.
// Errors that already carry a kind pass through unchanged.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict),
		errors.Is(err, ErrForbidden), errors.Is(err, ErrTransient):
		return err
	case errors.Is(err, repository.ErrEventNotFound), errors.Is(err, repository.ErrSeatNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, repository.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}
	switch {
	case isMySQLError(err, mysqlDuplicateEntry):
		return fmt.Errorf("%w: duplicate entry: %w", ErrConflict, err)
	case isMySQLError(err, mysqlDeadlockDetected), isMySQLError(err, mysqlLockWaitTimeout):
		// InnoDB rolled the transaction back; nothing was written.
		return fmt.Errorf("%w: lock contention, retry the request: %w", ErrTransient, err)
	}
	return fmt.Errorf("%w: %w", ErrTransient, err)
}
