// Package model holds the domain types shared by the service, repository and
// handler layers.
//
// All values here are immutable once built: records are produced fresh per
// request by the query executor and discarded after serialization.
package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidDateRange is returned when a range starts after it ends.
var ErrInvalidDateRange = errors.New("date_from must be <= date_to")

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	From Date
	To   Date
}

// NewDateRange builds a DateRange without validating it.
func NewDateRange(from, to Date) DateRange {
	return DateRange{From: from, To: to}
}

// Validate reports ErrInvalidDateRange when From is after To.
func (r DateRange) Validate() error {
	if r.From.After(r.To) {
		return ErrInvalidDateRange
	}
	return nil
}

// TEU is a capacity figure in twenty-foot equivalent units.
//
// It wraps decimal.Decimal so PostgreSQL numeric values keep their precision,
// and marshals as a bare JSON number.
type TEU struct {
	decimal.Decimal
}

// NewTEU builds a TEU from an integer amount.
func NewTEU(v int64) TEU {
	return TEU{Decimal: decimal.NewFromInt(v)}
}

// NewTEUFromString parses a decimal string such as "1250.50".
func NewTEUFromString(s string) (TEU, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return TEU{}, err
	}
	return TEU{Decimal: d}, nil
}

func (t TEU) MarshalJSON() ([]byte, error) {
	return []byte(t.Decimal.String()), nil
}

func (t *TEU) UnmarshalJSON(data []byte) error {
	return t.Decimal.UnmarshalJSON(data)
}

// CapacityRecord is one row of the rolling capacity query.
//
// Field order matches the column order of the query and of the JSON output.
type CapacityRecord struct {
	WeekStartDate      Date `db:"week_start_date" json:"week_start_date"`
	WeekNo             int  `db:"week_no" json:"week_no"`
	OfferedCapacityTEU TEU  `db:"offered_capacity_teu" json:"offered_capacity_teu"`
}
