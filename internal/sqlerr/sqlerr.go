// Package sqlerr specifically handles database driver errors.
//
// It parses the SQLSTATE codes reported by PostgreSQL into a small set of
// categories so failures can be tagged in logs and traces. It never changes
// what the client receives.
package sqlerr

import "fmt"

// Code is a coarse category of a PostgreSQL error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	SyntaxError         Code = "syntax_error"
	UndefinedTable      Code = "undefined_table"
	UndefinedColumn     Code = "undefined_column"
	UndefinedFunction   Code = "undefined_function"
	InvalidParameter    Code = "invalid_parameter"
	DataException       Code = "data_exception"
	QueryCanceled       Code = "query_canceled"
	ConnectionFailure   Code = "connection_failure"
	InsufficientPrivs   Code = "insufficient_privilege"
	ResourceExhausted   Code = "resource_exhausted"
)

// Severity mirrors the severity field of a PostgreSQL error.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is the normalized form of a PostgreSQL error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (pe *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", pe.Severity, pe.DatabaseCode, pe.Message)
}

func (pe *Error) Unwrap() error {
	return pe.driverErr
}

// MapCode maps a SQLSTATE to a Code. Exact codes win over their class.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "42601":
		return SyntaxError
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	case "42883":
		return UndefinedFunction
	case "42P02", "08P01":
		return InvalidParameter
	case "57014":
		return QueryCanceled
	case "42501":
		return InsufficientPrivs
	}

	if len(sqlState) < 2 {
		return Other
	}

	switch sqlState[:2] {
	case "08":
		return ConnectionFailure
	case "22":
		return DataException
	case "53":
		return ResourceExhausted
	case "57":
		return QueryCanceled
	}

	return Other
}

// MapSeverity maps the severity string sent by the server.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
