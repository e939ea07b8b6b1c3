package repository

import (
	"context"
	"time"

	"github.com/deppfellow/capacity-api/internal/errs"
	"github.com/deppfellow/capacity-api/internal/model"
	"github.com/deppfellow/capacity-api/internal/server"
	"github.com/deppfellow/capacity-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// CapacityRepository runs the capacity query template.
//
// Every call opens its own connection and closes it before returning, so
// concurrent requests never share a connection.
type CapacityRepository struct {
	server *server.Server
}

func NewCapacityRepository(s *server.Server) *CapacityRepository {
	return &CapacityRepository{server: s}
}

// Execute binds the range to @date_from/@date_to in the configured template
// and returns the rows in the order the query produced them.
//
// Any failure (connect, query, scan, timeout) comes back as *errs.ExecutionError.
func (r *CapacityRepository) Execute(ctx context.Context, dr model.DateRange) ([]model.CapacityRecord, error) {
	cfg := r.server.Config
	log := r.server.Logger
	if reqLog := zerolog.Ctx(ctx); reqLog.GetLevel() != zerolog.Disabled {
		log = reqLog
	}

	if timeout := cfg.Database.QueryTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()

	conn, err := r.server.DB.Connect(ctx)
	if err != nil {
		sqlerr.LogFields(log.Error().Err(err), err).Msg("failed to connect for capacity query")
		return nil, &errs.ExecutionError{Op: "connect", Err: errors.WithStack(err)}
	}
	defer conn.Close(context.Background())

	rows, err := conn.Query(ctx, cfg.Query.Template, pgx.NamedArgs{
		"date_from": dr.From,
		"date_to":   dr.To,
	})
	if err != nil {
		sqlerr.LogFields(log.Error().Err(err), err).Msg("capacity query failed")
		return nil, &errs.ExecutionError{Op: "query", Err: errors.WithStack(err)}
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.CapacityRecord])
	if err != nil {
		sqlerr.LogFields(log.Error().Err(err), err).Msg("failed to read capacity rows")
		return nil, &errs.ExecutionError{Op: "scan", Err: errors.WithStack(err)}
	}

	elapsed := time.Since(start)
	event := log.Debug()
	if threshold := cfg.Observability.Logging.SlowQueryThreshold; threshold > 0 && elapsed > threshold {
		event = log.Warn()
	}
	event.
		Str("date_from", dr.From.String()).
		Str("date_to", dr.To.String()).
		Int("rows", len(records)).
		Dur("duration", elapsed).
		Msg("capacity query executed")

	if records == nil {
		records = []model.CapacityRecord{}
	}

	return records, nil
}
