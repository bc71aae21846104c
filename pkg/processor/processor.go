// Package processor runs a complete top-up reconciliation: it loads both
// record sets, reconciles them and writes the report and quarantine files.
package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"topup/pkg/config"
	"topup/pkg/engine"
	"topup/pkg/parser"
	"topup/pkg/report"
	"topup/pkg/schema"
)

// Entity kinds used in log fields.
const (
	KindUsers     = "users"
	KindCompanies = "companies"
)

// LoadFunc loads the records stored at path.
type LoadFunc func(path string) (*parser.LoadResult, error)

// SinkFunc returns the sink writing to path.
type SinkFunc func(path string) report.Sink

// Processor wires the record loader, the reconciliation engine and the sinks.
type Processor struct {
	cfg    config.Config
	logger *zap.Logger
	load   LoadFunc
	sink   SinkFunc
}

// Option customises a Processor.
type Option func(*Processor)

// WithLoader replaces the file loader.
func WithLoader(fn LoadFunc) Option {
	return func(p *Processor) {
		p.load = fn
	}
}

// WithSinks replaces the file sinks.
func WithSinks(fn SinkFunc) Option {
	return func(p *Processor) {
		p.sink = fn
	}
}

// New creates a Processor for cfg. A nil logger discards all output.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Processor{
		cfg:    cfg,
		logger: logger,
		load:   parser.LoadFile,
		sink: func(path string) report.Sink {
			return report.NewFileSink(path)
		},
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Result is the outcome of one run.
type Result struct {
	RunID          string                 `json:"runId"`
	Reconciliation *engine.Reconciliation `json:"reconciliation"`
	// Written lists the destinations that were written successfully.
	Written []string `json:"written"`
}

// Reconcile loads both record sets and reconciles them without writing
// anything. Load failures degrade to an empty record set.
func (p *Processor) Reconcile(ctx context.Context) (*engine.Reconciliation, error) {
	logger := p.logger

	users := p.loadRecords(logger, KindUsers, p.cfg.UsersFile)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	companies := p.loadRecords(logger, KindCompanies, p.cfg.CompaniesFile)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return engine.Reconcile(users, companies, engine.WithDuplicateHook(func(d engine.DuplicateCompany) {
		logger.Warn("duplicate company id, later record wins",
			zap.Stringer("company_id", d.ID),
			zap.String("replaced_name", d.Replaced.Name),
			zap.String("winning_name", d.Replacement.Name),
			zap.Any("conflicts", d.Conflicts),
		)
	})), nil
}

// Process runs the full pipeline.
//
// Load and write failures never stop the run: a missing or malformed source
// is processed as empty and a failed write does not prevent the others. The
// returned error joins every write failure; it is nil when all writes
// succeeded. Only context cancellation aborts a run, in which case no result
// is returned.
func (p *Processor) Process(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run_id", runID))
	p = p.withLogger(logger)

	logger.Info("top-up run started",
		zap.String("users_file", p.cfg.UsersFile),
		zap.String("companies_file", p.cfg.CompaniesFile),
	)

	rec, err := p.Reconcile(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:          runID,
		Reconciliation: rec,
		Written:        make([]string, 0, 4),
	}

	var writeErrs []error
	write := func(kind, path string, render func() ([]byte, error)) {
		if err := ctx.Err(); err != nil {
			return
		}
		data, err := render()
		if err == nil {
			err = p.sink(path).Put(data)
		}
		if err != nil {
			logger.Error("failed to write output", zap.String("kind", kind), zap.String("path", path), zap.Error(err))
			writeErrs = append(writeErrs, fmt.Errorf("%s: %w", kind, err))
			return
		}
		logger.Debug("output written", zap.String("kind", kind), zap.String("path", path), zap.Int("bytes", len(data)))
		result.Written = append(result.Written, path)
	}

	if len(rec.Companies.Invalid) > 0 {
		write("bad companies", p.cfg.BadCompaniesFile, quarantine(rec.Companies.Invalid))
	}
	if len(rec.Users.Invalid) > 0 {
		write("bad users", p.cfg.BadUsersFile, quarantine(rec.Users.Invalid))
	}

	write("report", p.cfg.OutputFile, func() ([]byte, error) {
		return report.RenderReport(rec.Aggregate), nil
	})

	if p.cfg.JSONReportFile != "" {
		write("json report", p.cfg.JSONReportFile, func() ([]byte, error) {
			return engine.SerializeReport(rec.Aggregate, rec.Stats)
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := rec.Stats
	logger.Info("top-up run finished",
		zap.Int("companies_loaded", stats.CompaniesLoaded),
		zap.Int("companies_invalid", stats.CompaniesInvalid),
		zap.Int("duplicate_companies", stats.DuplicateCompanies),
		zap.Int("users_loaded", stats.UsersLoaded),
		zap.Int("users_invalid", stats.UsersInvalid),
		zap.Int("report_companies", stats.Report.Companies),
		zap.Int("report_users", stats.Report.Users),
		zap.Stringer("total_top_up", stats.Report.TotalTopUp),
		zap.Int("write_errors", len(writeErrs)),
	)

	return result, errors.Join(writeErrs...)
}

func (p *Processor) withLogger(logger *zap.Logger) *Processor {
	clone := *p
	clone.logger = logger
	return &clone
}

// loadRecords loads path and returns its records, or no records when the
// source is missing or malformed.
func (p *Processor) loadRecords(logger *zap.Logger, kind, path string) []*schema.Record {
	loaded, err := p.load(path)
	if err != nil {
		fields := []zap.Field{zap.String("kind", kind), zap.String("path", path), zap.Error(err)}
		var loadErr *parser.LoadError
		if errors.As(err, &loadErr) {
			fields = append(fields, zap.String("reason", string(loadErr.Reason)))
		}
		logger.Warn("failed to load records, continuing with none", fields...)
		return nil
	}

	logger.Debug("records loaded",
		zap.String("kind", kind),
		zap.String("path", path),
		zap.String("encoding", loaded.Encoding),
		zap.Int("count", len(loaded.Records)),
	)
	return loaded.Records
}

func quarantine(records []*schema.Record) func() ([]byte, error) {
	return func() ([]byte, error) {
		return report.RenderQuarantine(records)
	}
}
