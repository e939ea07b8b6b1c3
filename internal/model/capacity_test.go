package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestDateRangeValidate(t *testing.T) {
	cases := []struct {
		name    string
		from    Date
		to      Date
		wantErr bool
	}{
		{"same day", NewDate(2024, 1, 1), NewDate(2024, 1, 1), false},
		{"ordered", NewDate(2024, 1, 1), NewDate(2024, 1, 29), false},
		{"inverted", NewDate(2024, 3, 1), NewDate(2024, 1, 1), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewDateRange(tc.from, tc.to).Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidDateRange) {
					t.Fatalf("Validate() = %v, want ErrInvalidDateRange", err)
				}
				if err.Error() != "date_from must be <= date_to" {
					t.Fatalf("message = %q", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(NewDate(2024, time.January, 8)) {
		t.Fatalf("ParseDate = %s, want 2024-01-08", d)
	}

	for _, bad := range []string{"", "2024-1-8", "08/01/2024", "2024-02-30", "2024-01-08T00:00:00Z"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(NewDate(2024, time.January, 15))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-15"` {
		t.Fatalf("marshal = %s, want \"2024-01-15\"", b)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2024-01-22"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.String() != "2024-01-22" {
		t.Fatalf("unmarshal = %s", d)
	}

	if err := json.Unmarshal([]byte(`"22-01-2024"`), &d); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestDatePgtypeRoundTrip(t *testing.T) {
	src := NewDate(2024, time.January, 29)

	v, err := src.DateValue()
	if err != nil {
		t.Fatalf("DateValue: %v", err)
	}
	if !v.Valid {
		t.Fatal("DateValue returned invalid date")
	}

	var dst Date
	if err := dst.ScanDate(v); err != nil {
		t.Fatalf("ScanDate: %v", err)
	}
	if !dst.Equal(src) {
		t.Fatalf("round trip = %s, want %s", dst, src)
	}

	if err := dst.ScanDate(pgtype.Date{Valid: true, InfinityModifier: pgtype.Infinity}); err == nil {
		t.Fatal("expected error scanning infinity")
	}
}

func TestCapacityRecordJSON(t *testing.T) {
	teu, err := NewTEUFromString("125000.50")
	if err != nil {
		t.Fatalf("NewTEUFromString: %v", err)
	}

	rec := CapacityRecord{
		WeekStartDate:      NewDate(2024, time.January, 1),
		WeekNo:             1,
		OfferedCapacityTEU: teu,
	}

	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"week_start_date":"2024-01-01","week_no":1,"offered_capacity_teu":125000.5}`
	if string(b) != want {
		t.Fatalf("marshal =\n%s\nwant\n%s", b, want)
	}
}
