package runner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/johnwards/shopdb/internal/config"
	"github.com/johnwards/shopdb/internal/database"
	"github.com/johnwards/shopdb/internal/report"
	"github.com/johnwards/shopdb/internal/seed"
	"github.com/johnwards/shopdb/internal/store"
)

// ErrNotConnected is returned by steps that need a database before Connect
// has succeeded.
var ErrNotConnected = errors.New("database not connected")

// Runner owns the database handle for the duration of a run.
type Runner struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer

	db    *sql.DB
	store *store.Store
}

// New creates a Runner that prints reports to out.
func New(cfg config.Config, logger *slog.Logger, out io.Writer) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, logger: logger, out: out}
}

// Connect opens the configured database. On failure the runner stays
// unconnected.
func (r *Runner) Connect() error {
	db, err := database.Open(r.cfg.DBPath)
	if err != nil {
		r.logger.Error("connect failed", "path", r.cfg.DBPath, "error", err)
		return fmt.Errorf("connect: %w", err)
	}
	r.db = db
	r.store = store.New(db)
	r.logger.Info("database connected", "path", r.cfg.DBPath)
	return nil
}

// Seed drops and recreates the schema, then loads the seed data. Drop
// failures are logged and tolerated; a create or fill failure stops seeding
// and is returned.
func (r *Runner) Seed(ctx context.Context) error {
	if r.db == nil {
		return ErrNotConnected
	}

	if err := database.Reset(ctx, r.db, r.logStep); err != nil {
		return err
	}
	return seed.Seed(ctx, r.db, func(b seed.Batch, err error) error {
		return r.logFill(ctx, b, err)
	})
}

func (r *Runner) logStep(step database.Step, t database.Table, err error) error {
	switch {
	case err != nil && step == database.StepDrop:
		r.logger.Warn("drop table failed", "table", t.Name, "error", err)
		return nil
	case err != nil:
		r.logger.Error("create table failed", "table", t.Name, "error", err)
		return err
	case step == database.StepDrop:
		r.logger.Info("table dropped", "table", t.Name)
	default:
		r.logger.Info("table created", "table", t.Name)
	}
	return nil
}

func (r *Runner) logFill(ctx context.Context, b seed.Batch, err error) error {
	if err != nil {
		r.logger.Error("fill table failed", "table", b.Table.Name, "error", err)
		return err
	}
	n, err := r.store.Catalog.Count(ctx, b.Table)
	if err != nil {
		r.logger.Warn("count after fill failed", "table", b.Table.Name, "error", err)
		return nil
	}
	r.logger.Info("table filled", "table", b.Table.Name, "rows", n)
	return nil
}

// Report runs every report query and prints it. A failed query is logged,
// printed as failed, and does not stop the remaining reports. The returned
// error joins all report failures.
func (r *Runner) Report(ctx context.Context) error {
	if r.db == nil {
		return ErrNotConnected
	}

	var errs []error
	for _, q := range report.Queries {
		t, err := q.Run(ctx, r.store.Reports)
		if err != nil {
			r.logger.Error("report failed", "report", q.Name, "error", err)
			errs = append(errs, err)
			if rerr := report.RenderFailure(r.out, q.Title, r.cfg.Format, err); rerr != nil {
				errs = append(errs, fmt.Errorf("render %s: %w", q.Name, rerr))
			}
			continue
		}

		r.logger.Debug("report built", "report", q.Name, "rows", len(t.Rows))
		if err := report.Render(r.out, t, r.cfg.Format); err != nil {
			r.logger.Error("render failed", "report", q.Name, "error", err)
			errs = append(errs, fmt.Errorf("render %s: %w", q.Name, err))
		}
	}

	return errors.Join(errs...)
}

// Disconnect closes the database. Calling it on an unconnected runner is a
// no-op.
func (r *Runner) Disconnect() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	r.store = nil
	if err != nil {
		r.logger.Error("disconnect failed", "error", err)
		return fmt.Errorf("disconnect: %w", err)
	}
	r.logger.Info("database disconnected")
	return nil
}

// Run performs connect, seed, report and disconnect in order. Every failure
// is logged and none is returned: a failed connect skips seeding and
// reporting, and any later failure still reaches Disconnect.
func (r *Runner) Run(ctx context.Context) {
	if err := r.Connect(); err != nil {
		return
	}
	defer func() { _ = r.Disconnect() }()

	if err := r.Seed(ctx); err != nil {
		r.logger.Error("seeding incomplete", "error", err)
	}

	if err := r.Report(ctx); err != nil {
		r.logger.Error("reports incomplete", "error", err)
	}
}
