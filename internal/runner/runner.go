package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/admin/sqlloader/internal/dataset"
	"github.com/admin/sqlloader/internal/db"
	"github.com/admin/sqlloader/internal/errors"
)

// Runner executes dataset scripts against connections from its provider.
// Statement statuses are written to out.
type Runner struct {
	provider db.Provider
	out      io.Writer
	log      *slog.Logger
}

func New(provider db.Provider, out io.Writer, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{provider: provider, out: out, log: log}
}

// Load executes the load scripts in order on one connection. There is no
// transaction: statements that ran before a failure stay applied.
func (r *Runner) Load(ctx context.Context, ds *dataset.Dataset) error {
	r.log.Info("loading dataset", "dataset", ds.Name(), "scripts", len(ds.Ups))
	return r.run(ctx, ds, ds.Ups)
}

// Reset reloads the dataset and then runs its reset scripts.
func (r *Runner) Reset(ctx context.Context, ds *dataset.Dataset) error {
	if len(ds.Downs) == 0 {
		return errors.ErrNoResetScripts
	}
	if err := r.Load(ctx, ds); err != nil {
		return err
	}
	r.log.Info("resetting dataset", "dataset", ds.Name(), "scripts", len(ds.Downs))
	return r.run(ctx, ds, ds.Downs)
}

// List dumps the load scripts then the reset scripts of every dataset.
func (r *Runner) List(datasets []*dataset.Dataset) error {
	for _, ds := range datasets {
		for _, s := range append(append([]string{}, ds.Ups...), ds.Downs...) {
			if err := r.puts(s); err != nil {
				return err
			}
		}
	}
	return nil
}

// puts writes s followed by a newline unless s already ends with one.
func (r *Runner) puts(s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(r.out, s)
	return err
}

func (r *Runner) run(ctx context.Context, ds *dataset.Dataset, scripts []string) error {
	conn, err := r.provider.Connect(ctx, ds.Config)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(ctx); err != nil {
			r.log.Warn("closing connection", "dataset", ds.Name(), "error", err)
		}
	}()

	for i, script := range scripts {
		status, err := conn.Exec(ctx, script)
		if err != nil {
			return errors.WrapExecution(err)
		}
		r.log.Debug("executed script", "dataset", ds.Name(), "index", i, "status", status)
		fmt.Fprintln(r.out, status)
	}
	return nil
}
