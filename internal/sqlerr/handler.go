package sqlerr

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// Classify returns a category for any error raised while talking to PostgreSQL.
//
// Server-side errors keep their SQLSTATE. Deadlines and network failures that
// never reached the server are reported as QueryCanceled and ConnectionFailure.
func Classify(err error) Code {
	if err == nil {
		return Other
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || pgconn.Timeout(err) {
		return QueryCanceled
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connectErr) || errors.As(err, &netErr) {
		return ConnectionFailure
	}

	return Other
}

// LogFields attaches the classification of err to a log event.
func LogFields(e *zerolog.Event, err error) *zerolog.Event {
	e = e.Str("db_error_class", string(Classify(err)))

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		e = e.Str("sql_state", sqlErr.DatabaseCode).
			Str("db_severity", string(sqlErr.Severity))
		if sqlErr.TableName != "" {
			e = e.Str("db_table", sqlErr.TableName)
		}
		if sqlErr.ConstraintName != "" {
			e = e.Str("db_constraint", sqlErr.ConstraintName)
		}
	}

	return e
}
