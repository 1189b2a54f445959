package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/bible-app-data/internal/config"
	"github.com/julianstephens/bible-app-data/internal/convert"
)

// App holds what every command needs.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	proc   *convert.Processor
	log    *logrus.Logger
	strict bool
}

func NewApp(ctx context.Context, g Globals, log *logrus.Logger) (*App, error) {
	cfg := config.Default()
	if g.Config != "" {
		loaded, err := config.Load(g.Config)
		if err != nil {
			return nil, errors.Wrap(err, "loading job file")
		}
		cfg = loaded
		log.Debugf("Loaded %d jobs from %s", len(cfg.Jobs), g.Config)
	}

	return &App{
		ctx:    ctx,
		cfg:    cfg,
		proc:   convert.NewProcessor(g.Root, log),
		log:    log,
		strict: g.Strict,
	}, nil
}

func (a *App) jobs(names []string) ([]config.Job, error) {
	jobs := make([]config.Job, len(names))
	for i, name := range names {
		job, ok := a.cfg.Job(name)
		if !ok {
			return nil, errors.Errorf("unknown job %q (available: %s)", name, strings.Join(a.cfg.Names(), ", "))
		}
		jobs[i] = job
	}
	return jobs, nil
}

// Run processes the named jobs in order and stops at the first failure.
func (a *App) Run(names ...string) error {
	jobs, err := a.jobs(names)
	if err != nil {
		return err
	}

	results := make([]*convert.ProcessResult, 0, len(jobs))
	for _, job := range jobs {
		result, err := a.proc.Process(a.ctx, job)
		if err != nil {
			return errors.Wrapf(err, "job %s failed", job.Name)
		}
		a.proc.PrintResult(result)
		results = append(results, result)
	}
	return a.check(results)
}

// RunParallel processes the named jobs concurrently, at most limit at a
// time. Results are printed in job order once every job has finished.
func (a *App) RunParallel(limit int, names ...string) error {
	jobs, err := a.jobs(names)
	if err != nil {
		return err
	}

	results := make([]*convert.ProcessResult, len(jobs))
	g, ctx := errgroup.WithContext(a.ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, job := range jobs {
		g.Go(func() error {
			result, err := a.proc.Process(ctx, job)
			if err != nil {
				return errors.Wrapf(err, "job %s failed", job.Name)
			}
			results[i] = result
			return nil
		})
	}
	err = g.Wait()

	var done []*convert.ProcessResult
	for _, result := range results {
		if result != nil {
			a.proc.PrintResult(result)
			done = append(done, result)
		}
	}
	if err != nil {
		return err
	}
	return a.check(done)
}

func (a *App) check(results []*convert.ProcessResult) error {
	var invalid []string
	for _, result := range results {
		if result.Failed() {
			invalid = append(invalid, result.Job)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	if a.strict {
		return errors.Errorf("validation failed for %s", strings.Join(invalid, ", "))
	}
	a.log.Warnf("Validation errors in %s, output was written anyway", strings.Join(invalid, ", "))
	return nil
}

type KTBCmd struct{}

func (c *KTBCmd) Run(app *App) error {
	return app.Run("KTB")
}

type KYBCmd struct{}

func (c *KYBCmd) Run(app *App) error {
	return app.Run("KYB")
}

type RSTCmd struct{}

func (c *RSTCmd) Run(app *App) error {
	return app.Run("RST")
}

type JobCmd struct {
	Name string `arg:"" help:"Job name, case-insensitive"`
}

func (c *JobCmd) Run(app *App) error {
	return app.Run(c.Name)
}

type AllCmd struct {
	Parallel int `short:"p" help:"Run up to N jobs at once (0 runs them one by one)" default:"0"`
}

func (c *AllCmd) Run(app *App) error {
	if c.Parallel > 0 {
		return app.RunParallel(c.Parallel, app.cfg.Names()...)
	}
	return app.Run(app.cfg.Names()...)
}

type ListCmd struct{}

func (c *ListCmd) Run(app *App) error {
	for _, job := range app.cfg.Jobs {
		fmt.Printf("%-6s %-8s -> %s\n", job.Name, job.Kind, job.Output)
	}
	return nil
}
