package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	ierr "github.com/paperstack/paperstack/internal/errors"
)

const uniqueViolation = "23505"

// translate maps driver errors onto the domain sentinels
func translate(err error, entity string, details map[string]any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			WithReportableDetails(details).
			Mark(ierr.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ierr.WithError(err).
			WithHintf("%s already exists", entity).
			WithReportableDetails(details).
			Mark(ierr.ErrAlreadyExists)
	}

	return ierr.WithError(err).
		WithMessagef("%s query failed", entity).
		Mark(ierr.ErrDatabase)
}

func requireAffected(result sql.Result, entity, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return translate(err, entity, nil)
	}
	if n == 0 {
		return ierr.NewErrorf("%s %s not found", entity, id).
			WithHintf("%s not found", entity).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
