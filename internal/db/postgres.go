package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/config"
)

// PostgresDB holds the pool used for login accounts
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// NewPostgresDB opens the account pool and checks the server answers.
// Statements are traced through lgr; at debug level every query is logged.
func NewPostgresDB(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*PostgresDB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   pgxLogger{lgr: lgr.With().Str("component", "postgres").Logger()},
		LogLevel: traceLevel(max(lgr.GetLevel(), zerolog.GlobalLevel())),
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &PostgresDB{Pool: pool}, nil
}

// Ping is used by the health endpoint
func (db *PostgresDB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close releases every pooled connection
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// pgxLogger forwards pgx trace output to zerolog.
type pgxLogger struct {
	lgr zerolog.Logger
}

func (l pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var event *zerolog.Event
	switch level {
	case tracelog.LogLevelError:
		event = l.lgr.Error()
	case tracelog.LogLevelWarn:
		event = l.lgr.Warn()
	case tracelog.LogLevelInfo:
		event = l.lgr.Info()
	default:
		event = l.lgr.Debug()
	}
	event.Fields(data).Msg(msg)
}

// traceLevel only turns on per-query tracing when debug logging is enabled.
func traceLevel(level zerolog.Level) tracelog.LogLevel {
	if level <= zerolog.DebugLevel {
		return tracelog.LogLevelDebug
	}
	return tracelog.LogLevelWarn
}
