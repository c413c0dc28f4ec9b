package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include query variables in spans
	SlowQueryThresh time.Duration // queries slower than this are flagged on their span
	DBSystem        string
	// TracerProvider overrides the global provider when set.
	TracerProvider trace.TracerProvider
}

// RegisterDBTracing installs otelgorm on db plus callbacks that tag each
// statement span with its table, rows affected, errors and slowness.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(cfg.TracerProvider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register otelgorm: %w", err)
	}

	if err := registerSpanAnnotations(db, cfg.SlowQueryThresh); err != nil {
		return fmt.Errorf("failed to register span annotations: %w", err)
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", cfg.DBSystem),
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

func markStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

// annotateSpan returns the after-statement callback. It runs before
// otelgorm ends the span.
func annotateSpan(slowThreshold time.Duration) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return
		}

		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, db.Error.Error())
			span.RecordError(db.Error)
		}

		start, ok := ctx.Value(queryStartTimeKey).(time.Time)
		if !ok || slowThreshold <= 0 {
			return
		}
		if elapsed := time.Since(start); elapsed > slowThreshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}

func registerSpanAnnotations(db *gorm.DB, slowThreshold time.Duration) error {
	after := annotateSpan(slowThreshold)
	cb := db.Callback()

	type hook struct {
		op       string
		register func(name string, fn func(*gorm.DB)) error
		before   bool
	}
	hooks := []hook{
		{"create", cb.Create().Before("gorm:create").Register, true},
		{"create", cb.Create().After("gorm:create").Before("otel:after:create").Register, false},
		{"query", cb.Query().Before("gorm:query").Register, true},
		{"query", cb.Query().After("gorm:query").Before("otel:after:query").Register, false},
		{"update", cb.Update().Before("gorm:update").Register, true},
		{"update", cb.Update().After("gorm:update").Before("otel:after:update").Register, false},
		{"delete", cb.Delete().Before("gorm:delete").Register, true},
		{"delete", cb.Delete().After("gorm:delete").Before("otel:after:delete").Register, false},
		{"row", cb.Row().Before("gorm:row").Register, true},
		{"row", cb.Row().After("gorm:row").Before("otel:after:row").Register, false},
		{"raw", cb.Raw().Before("gorm:raw").Register, true},
		{"raw", cb.Raw().After("gorm:raw").Before("otel:after:raw").Register, false},
	}

	for _, h := range hooks {
		var err error
		if h.before {
			err = h.register("devicedesk:before_"+h.op, markStart)
		} else {
			err = h.register("devicedesk:annotate_"+h.op, after)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
