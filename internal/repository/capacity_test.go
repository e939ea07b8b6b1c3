package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/deppfellow/capacity-api/internal/config"
	"github.com/deppfellow/capacity-api/internal/database"
	"github.com/deppfellow/capacity-api/internal/errs"
	"github.com/deppfellow/capacity-api/internal/model"
	"github.com/deppfellow/capacity-api/internal/server"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const testServiceCode = "TEST-ROLLING"

// newTestServer connects to CAPACITY_TEST_DB_DSN, migrates it and loads the
// production query template. Tests are skipped when the variable is unset.
func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	dsn := os.Getenv("CAPACITY_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("set CAPACITY_TEST_DB_DSN to run database tests")
	}

	cfg := config.DefaultConfig()
	cfg.Database.DSN = dsn
	cfg.Database.QueryTimeout = 10 * time.Second

	template, err := config.LoadQueryTemplate("../../sql/capacity_rolling.sql")
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	cfg.Query.Template = template

	logger := zerolog.Nop()

	ctx := context.Background()
	if err := database.Migrate(ctx, &logger, cfg); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := database.New(cfg, &logger, nil)
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}

	return &server.Server{Config: cfg, Logger: &logger, DB: db}
}

func seed(t *testing.T, s *server.Server, rows map[string]int64) {
	t.Helper()

	ctx := context.Background()
	conn, err := s.DB.Connect(ctx)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer conn.Close(ctx)

	for day, teu := range rows {
		_, err := conn.Exec(ctx,
			`INSERT INTO sailing_capacity (service_code, vessel_name, departure_date, offered_capacity_teu)
			 VALUES ($1, 'MV Test', $2, $3)`,
			testServiceCode, mustDate(t, day), teu)
		if err != nil {
			t.Fatalf("seed %s: %v", day, err)
		}
	}

	t.Cleanup(func() {
		conn, err := s.DB.Connect(ctx)
		if err != nil {
			t.Errorf("cleanup connect: %v", err)
			return
		}
		defer conn.Close(ctx)

		if _, err := conn.Exec(ctx, `DELETE FROM sailing_capacity WHERE service_code = $1`, testServiceCode); err != nil {
			t.Errorf("cleanup: %v", err)
		}
	})
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()

	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func TestWeeksBetween(t *testing.T) {
	s := newTestServer(t)

	ctx := context.Background()
	conn, err := s.DB.Connect(ctx)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, `SELECT week_start_date FROM weeks_between('2024-01-01', '2024-01-29')`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	var got []string
	for rows.Next() {
		var d model.Date
		if err := rows.Scan(&d); err != nil {
			t.Fatalf("scan: %v", err)
		}
		got = append(got, d.String())
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}

	want := []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29"}
	if len(got) != len(want) {
		t.Fatalf("weeks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("weeks = %v, want %v", got, want)
		}
	}
}

func TestExecute_RollingAverage(t *testing.T) {
	s := newTestServer(t)
	seed(t, s, map[string]int64{
		"2099-01-05": 100,
		"2099-01-14": 200,
		"2099-01-19": 300,
		"2099-01-30": 400,
	})

	repo := NewCapacityRepository(s)
	records, err := repo.Execute(context.Background(),
		model.NewDateRange(mustDate(t, "2099-01-05"), mustDate(t, "2099-01-26")))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []struct {
		week string
		teu  string
	}{
		{"2099-01-05", "25"},
		{"2099-01-12", "75"},
		{"2099-01-19", "150"},
		{"2099-01-26", "250"},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(records), len(want), records)
	}
	for i, w := range want {
		if records[i].WeekStartDate.String() != w.week {
			t.Fatalf("row %d week = %s, want %s", i, records[i].WeekStartDate, w.week)
		}
		if !records[i].OfferedCapacityTEU.Equal(decimal.RequireFromString(w.teu)) {
			t.Fatalf("row %d teu = %s, want %s", i, records[i].OfferedCapacityTEU, w.teu)
		}
	}
}

func TestExecute_EmptyWindow(t *testing.T) {
	s := newTestServer(t)

	repo := NewCapacityRepository(s)
	records, err := repo.Execute(context.Background(),
		model.NewDateRange(mustDate(t, "2150-06-01"), mustDate(t, "2150-06-01")))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if records == nil {
		t.Fatal("records must be an empty slice, not nil")
	}
	for _, r := range records {
		if !r.OfferedCapacityTEU.IsZero() {
			t.Fatalf("unexpected capacity in empty window: %+v", r)
		}
	}
}

func TestExecute_QueryErrorIsExecutionError(t *testing.T) {
	s := newTestServer(t)
	s.Config.Query.Template = `SELECT week_start_date FROM no_such_table WHERE @date_from::date <= @date_to::date`

	repo := NewCapacityRepository(s)
	_, err := repo.Execute(context.Background(),
		model.NewDateRange(mustDate(t, "2024-01-01"), mustDate(t, "2024-01-31")))

	var execErr *errs.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("err = %v (%T), want *errs.ExecutionError", err, err)
	}
	if execErr.Error() == "" {
		t.Fatal("execution error must carry the database message")
	}
}
