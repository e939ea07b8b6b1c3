package handler

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestGetCapacityRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     GetCapacityRequest
		wantErr bool
	}{
		{"valid", GetCapacityRequest{DateFrom: "2024-01-01", DateTo: "2024-03-31"}, false},
		{"inverted is not a format error", GetCapacityRequest{DateFrom: "2024-03-01", DateTo: "2024-01-01"}, false},
		{"missing from", GetCapacityRequest{DateTo: "2024-01-01"}, true},
		{"time component", GetCapacityRequest{DateFrom: "2024-01-01T00:00:00Z", DateTo: "2024-01-02"}, true},
		{"day out of range", GetCapacityRequest{DateFrom: "2024-01-32", DateTo: "2024-02-01"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				var ve validator.ValidationErrors
				if !errors.As(err, &ve) {
					t.Fatalf("err = %v, want validator.ValidationErrors", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestGetCapacityRequestDateRange(t *testing.T) {
	req := GetCapacityRequest{DateFrom: "2024-01-01", DateTo: "2024-01-29"}

	dr, err := req.DateRange()
	if err != nil {
		t.Fatalf("DateRange: %v", err)
	}
	if dr.From.String() != "2024-01-01" || dr.To.String() != "2024-01-29" {
		t.Fatalf("range = %s..%s", dr.From, dr.To)
	}
	if err := dr.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
