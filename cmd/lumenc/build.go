package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lumenlang/lumenc/internal/compiler/driver"
	"github.com/lumenlang/lumenc/internal/compiler/input"
	"github.com/lumenlang/lumenc/internal/compiler/options"
	"github.com/lumenlang/lumenc/internal/compiler/output"
	"github.com/lumenlang/lumenc/internal/corelang"
	"github.com/lumenlang/lumenc/internal/logging"
	"github.com/lumenlang/lumenc/internal/project"
	"github.com/urfave/cli/v3"
)

func buildAction(ctx context.Context, cmd *cli.Command) error {
	logLevel := cmd.String("log-level")
	SetupLogger(logLevel)

	manifest, err := loadManifest(cmd)
	if err != nil {
		return err
	}

	opts := resolveOptions(cmd, manifest)
	slog.Debug("resolved compiler configuration", "options", "\n"+opts.String())

	spec, err := resolveInputSpec(cmd)
	if err != nil {
		return err
	}

	d, err := driver.New(driver.Config{
		Options:     opts,
		Frontend:    corelang.New(),
		Router:      output.NewRouter(os.Stdout),
		Handler:     diagnosticHandler(logLevel, opts.VerboseErrors),
		Version:     cmd.Root().Version,
		OutputPath:  stringSetting(cmd, "output", manifest.Output),
		ExternsPath: stringSetting(cmd, "externs", manifest.Externs),
	})
	if err != nil {
		return err
	}

	return d.Run(ctx, spec)
}

// diagnosticHandler builds the handler failed-run logs are replayed into.
// Stage logs are recorded at debug, so verbose diagnostics force the debug
// level; the default error level would filter the replay away.
func diagnosticHandler(logLevel string, verbose bool) slog.Handler {
	if verbose {
		return logging.SetupHandlerText("debug", nil)
	}
	return logging.SetupHandlerText(logLevel, nil)
}

// loadManifest loads the manifest named by --project, or the default
// manifest from the working directory. Only an explicitly requested
// manifest is required to exist.
func loadManifest(cmd *cli.Command) (*project.Manifest, error) {
	if path := cmd.String("project"); path != "" {
		m, err := project.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load project manifest: %w", err)
		}
		return m, nil
	}
	return project.LoadDefault()
}

// resolveOptions merges the command-line flags over the manifest defaults
// into the immutable compiler configuration.
func resolveOptions(cmd *cli.Command, m *project.Manifest) options.Options {
	var opts []options.Option

	if boolSetting(cmd, "no-prelude", m.NoPrelude) {
		opts = append(opts, options.WithNoPrelude())
	}
	if boolSetting(cmd, "no-tco", m.NoTCO) {
		opts = append(opts, options.WithNoTCO())
	}
	if boolSetting(cmd, "no-magic-do", m.NoMagicDo) {
		opts = append(opts, options.WithNoMagicDo())
	}
	if boolSetting(cmd, "no-opts", m.NoOpts) {
		opts = append(opts, options.WithNoOpts())
	}
	if boolSetting(cmd, "no-prefix", m.NoPrefix) {
		opts = append(opts, options.WithNoPrefix())
	}
	if boolSetting(cmd, "verbose-errors", m.VerboseErrors) {
		opts = append(opts, options.WithVerboseErrors())
	}
	if entry := stringSetting(cmd, "main", m.Main); entry != "" {
		opts = append(opts, options.WithEntryModule(entry))
	}
	if ns := stringSetting(cmd, "browser-namespace", m.BrowserNamespace); ns != "" {
		opts = append(opts, options.WithBrowserNamespace(ns))
	}
	for _, name := range sliceSetting(cmd, "module", m.Modules) {
		opts = append(opts, options.WithDCERoot(name))
	}
	for _, name := range sliceSetting(cmd, "codegen", m.CodegenModules) {
		opts = append(opts, options.WithCodegenModule(name))
	}

	return options.New(opts...)
}

func resolveInputSpec(cmd *cli.Command) (input.Spec, error) {
	if cmd.Bool("stdin") {
		return input.StdinSpec(os.Stdin), nil
	}
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return input.Spec{}, fmt.Errorf("no input files (pass source files or --stdin)")
	}
	return input.FilesSpec(files...), nil
}

func boolSetting(cmd *cli.Command, name string, manifestValue bool) bool {
	if cmd.IsSet(name) {
		return cmd.Bool(name)
	}
	return manifestValue
}

func stringSetting(cmd *cli.Command, name, manifestValue string) string {
	if cmd.IsSet(name) {
		return cmd.String(name)
	}
	return manifestValue
}

func sliceSetting(cmd *cli.Command, name string, manifestValue []string) []string {
	if cmd.IsSet(name) {
		return cmd.StringSlice(name)
	}
	return manifestValue
}
