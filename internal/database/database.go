// Package database contains the logic for establishing
// connections to the PostgreSQL database.
//
// Connections are not pooled: every caller opens its own connection for the
// duration of one operation and closes it on every exit path. This package
// only prepares the connection config once and integrates the logger/tracer
// with the database driver (PGX).
//
// It handles:
//   - parsing the DSN from config
//   - wiring query tracing/logging (pgx tracelog)
//   - optional New Relic instrumentation (nrpgx5)
package database

import (
	"context"
	"fmt"

	"github.com/deppfellow/capacity-api/internal/config"
	loggerConfig "github.com/deppfellow/capacity-api/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database holds the parsed connection config and a logger.
type Database struct {
	connConfig *pgx.ConnConfig
	log        *zerolog.Logger
}

// multiTracer allows chaining multiple tracers.
//
// pgx supports a single Tracer in ConnConfig. This adapter runs:
//   - New Relic tracer (for distributed tracing/APM)
//   - tracelog.TraceLog (for local SQL logging in "local" env)
type multiTracer struct {
	tracers []pgx.QueryTracer
}

// TraceQueryStart calls every tracer in order, threading the context through.
func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		ctx = tracer.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

// TraceQueryEnd calls every tracer in order.
func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		tracer.TraceQueryEnd(ctx, conn, data)
	}
}

// New parses the DSN and attaches tracers.
//
// It does not connect: the database may be down at startup without
// preventing the process from serving liveness checks.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	connConfig, err := pgx.ParseConfig(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx connection config: %w", err)
	}

	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// SQL logging is noisy, which is why it's only in local.
	if cfg.IsLocal() {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		connConfig.Tracer = tracers[0]
	default:
		connConfig.Tracer = &multiTracer{tracers: tracers}
	}

	return &Database{
		connConfig: connConfig,
		log:        logger,
	}, nil
}

// Connect opens a new connection. The caller owns it and must close it.
func (db *Database) Connect(ctx context.Context) (*pgx.Conn, error) {
	conn, err := pgx.ConnectConfig(ctx, db.connConfig.Copy())
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Ping opens a connection, pings the server and closes the connection.
func (db *Database) Ping(ctx context.Context) error {
	conn, err := db.Connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	return conn.Ping(ctx)
}

// ConnString returns the DSN the config was parsed from.
func (db *Database) ConnString() string {
	return db.connConfig.ConnString()
}

// Close releases nothing today; connections are closed by their owners.
// It exists so the server shutdown sequence stays uniform.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database access")
	return nil
}
