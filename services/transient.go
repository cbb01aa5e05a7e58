package services

import (
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"syscall"

	"chat-feed/repositories"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes that roll back cleanly and are safe to re-run
// from the first step of the protocol.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// isTransient classifies failures that fully rolled back and can be
// retried by re-running the whole transaction. Everything else, notably
// the sequence integrity violation, must surface unchanged.
func isTransient(err error) bool {
	if errors.Is(err, repositories.ErrSenderRace) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return true
		}
		return false
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
