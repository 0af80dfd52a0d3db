// Package driver runs the compilation pipeline: resolve inputs, parse,
// compile, route outputs. One driver performs exactly one run; there is no
// retry, caching, or concurrency.
package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"
	"github.com/lumenlang/lumenc/internal/compiler/driver/finitestate"
	"github.com/lumenlang/lumenc/internal/compiler/input"
	"github.com/lumenlang/lumenc/internal/compiler/options"
	"github.com/lumenlang/lumenc/internal/compiler/output"
	"github.com/lumenlang/lumenc/internal/corelang"
	"github.com/robbyt/go-loglater"
	"github.com/robbyt/go-loglater/storage"
)

// Frontend is the compiler core collaborator. The production
// implementation is corelang; tests substitute fakes.
type Frontend interface {
	ParseModules(units []input.SourceUnit) ([]*corelang.Module, error)
	Compile(opts options.Options, modules []*corelang.Module, prefixLines []string) (corelang.Artifacts, error)
}

// Config assembles a driver.
type Config struct {
	// Options is the immutable compiler configuration.
	Options options.Options

	// Frontend is the compiler core. Required.
	Frontend Frontend

	// Router writes the run's artifacts. Nil defaults to a stdout router.
	Router *output.Router

	// Handler receives diagnostic output. Nil defaults to the process
	// default handler. Stage logs are captured per run and replayed to
	// this handler when a run fails with verbose diagnostics enabled.
	Handler slog.Handler

	// Version is the build version embedded in the generated-by header
	// line. Supplied explicitly by main; never read from ambient state.
	Version string

	// OutputPath is the generated-code destination. Empty means stdout.
	OutputPath string

	// ExternsPath is the externs destination. Empty discards the externs.
	ExternsPath string
}

// Driver executes a single compilation run.
type Driver struct {
	opts        options.Options
	frontend    Frontend
	router      *output.Router
	handler     slog.Handler
	version     string
	outputPath  string
	externsPath string

	machine   finitestate.Machine
	collector *loglater.LogCollector
	logger    *slog.Logger
}

// New builds a driver for one run.
func New(cfg Config) (*Driver, error) {
	if cfg.Frontend == nil {
		return nil, fmt.Errorf("driver requires a frontend")
	}
	if cfg.Router == nil {
		cfg.Router = output.NewRouter(nil)
	}
	if cfg.Handler == nil {
		cfg.Handler = slog.Default().Handler()
	}

	collector := loglater.NewLogCollector(nil)
	machine, err := finitestate.New(collector)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline state machine: %w", err)
	}

	runID := uuid.Must(uuid.NewV4())
	logger := slog.New(collector).With("run", runID.String())

	return &Driver{
		opts:        cfg.Options,
		frontend:    cfg.Frontend,
		router:      cfg.Router,
		handler:     cfg.Handler,
		version:     cfg.Version,
		outputPath:  cfg.OutputPath,
		externsPath: cfg.ExternsPath,
		machine:     machine,
		collector:   collector,
		logger:      logger,
	}, nil
}

// Run executes the pipeline against the given input spec. Any failure is
// terminal: the driver moves to the error state and reports a StageError
// naming the failed stage. The caller maps a non-nil error to exit code 1.
func (d *Driver) Run(ctx context.Context, spec input.Spec) error {
	d.logger.Debug("starting run", "stdin", spec.UseStdin(), "files", len(spec.Files()))

	units, err := input.Resolve(spec, d.opts.NoPrelude)
	if err != nil {
		return d.fail(StageInput, err)
	}
	if err := d.advance(StageInput, finitestate.StateInputsRead); err != nil {
		return err
	}
	d.logger.Debug("inputs resolved", "units", len(units))

	modules, err := d.frontend.ParseModules(units)
	if err != nil {
		return d.fail(StageParse, err)
	}
	if err := d.advance(StageParse, finitestate.StateParsed); err != nil {
		return err
	}
	d.logger.Debug("modules parsed", "modules", len(modules))

	artifacts, err := d.frontend.Compile(d.opts, modules, PrefixLines(d.opts.NoPrefix, d.version))
	if err != nil {
		return d.fail(StageCompile, err)
	}
	if err := d.advance(StageCompile, finitestate.StateCompiled); err != nil {
		return err
	}
	d.logger.Debug("compiled", "code_bytes", len(artifacts.Code), "externs_bytes", len(artifacts.Externs))

	if err := d.router.Route(artifacts.Code, artifacts.Externs, d.outputPath, d.externsPath); err != nil {
		return d.fail(StageOutput, err)
	}
	if err := d.advance(StageOutput, finitestate.StateOutputsWritten); err != nil {
		return err
	}
	d.logger.Debug("run complete")

	return nil
}

// State returns the pipeline's current state.
func (d *Driver) State() string {
	return d.machine.GetState()
}

// Logs returns the stage log records captured during the run.
func (d *Driver) Logs() []storage.Record {
	return d.collector.GetLogs()
}

func (d *Driver) advance(stage Stage, state string) error {
	if err := d.machine.Transition(state); err != nil {
		return d.fail(stage, fmt.Errorf("pipeline state error: %w", err))
	}
	return nil
}

// fail records the failure, replays the captured stage logs when verbose
// diagnostics are enabled, and wraps the cause with its stage.
func (d *Driver) fail(stage Stage, err error) error {
	d.logger.Error("run failed", "stage", string(stage), "error", err)
	d.machine.TransitionBool(finitestate.StateError)
	if d.opts.VerboseErrors {
		if replayErr := d.collector.PlayLogs(d.handler); replayErr != nil {
			d.logger.Error("failed to replay run logs", "error", replayErr)
		}
	}
	return stageErr(stage, err)
}

// PrefixLines computes the header comment lines prepended to generated
// code: none when suppressed, otherwise a single provenance line.
func PrefixLines(noPrefix bool, version string) []string {
	if noPrefix {
		return nil
	}
	return []string{fmt.Sprintf("Generated by lumenc version %s", version)}
}
