package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// Version is set during build using ldflags
var Version = "dev"

func main() {
	args, err := normalizeArgs(os.Args)
	if err == nil {
		err = newRootCommand().Run(context.Background(), args)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "lumenc",
		Version: Version,
		Usage:   "Compile Lumen source files to JavaScript",
		Commands: []*cli.Command{
			versionCmd,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stdin",
				Usage: "Read source from standard input instead of files",
			},
			&cli.BoolFlag{
				Name:  "no-prelude",
				Usage: "Do not inject the Prelude module",
			},
			&cli.BoolFlag{
				Name:  "no-tco",
				Usage: "Disable tail-call optimization",
			},
			&cli.BoolFlag{
				Name:  "no-magic-do",
				Usage: "Disable the specialized effect-block code generation",
			},
			&cli.BoolFlag{
				Name:  "no-opts",
				Usage: "Disable the optimization phase",
			},
			&cli.BoolFlag{
				Name:  "no-prefix",
				Usage: "Omit the generated-by header comment",
			},
			&cli.StringFlag{
				Name:  "main",
				Usage: "Generate an entry-point invocation for MODULE (bare flag defaults to Main)",
			},
			&cli.StringFlag{
				Name:  "browser-namespace",
				Usage: "Global namespace object for generated code",
			},
			&cli.StringSliceFlag{
				Name:  "module",
				Usage: "Dead-code-elimination root module (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "codegen",
				Usage: "Restrict code and externs output to this module (repeatable)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write generated code to PATH instead of stdout",
			},
			&cli.StringFlag{
				Name:    "externs",
				Aliases: []string{"e"},
				Usage:   "Write the externs descriptor to PATH",
			},
			&cli.BoolFlag{
				Name:  "verbose-errors",
				Usage: "Verbose diagnostics on failure",
			},
			&cli.StringFlag{
				Name:  "project",
				Usage: "Project manifest supplying flag defaults (default ./lumen.toml if present)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: trace, debug, info, warn, error",
				Value: "error",
			},
		},
		Suggest: true,
		Action:  buildAction,
	}
}

// normalizeArgs collapses the tri-state --main flag: a bare --main becomes
// --main=Main before flag parsing, an explicit --main=Module is untouched.
// Arguments after the -- terminator are never rewritten. A bare --main
// followed by what reads as a module name is rejected; rewriting it would
// silently treat the intended value as an input file.
func normalizeArgs(args []string) ([]string, error) {
	out := make([]string, len(args))
	copy(out, args)
	for i, arg := range out {
		if arg == "--" {
			break
		}
		if arg == "--main" {
			if i+1 < len(out) && looksLikeModuleName(out[i+1]) {
				return nil, fmt.Errorf("--main takes its value with '=': use --main=%s", out[i+1])
			}
			out[i] = "--main=Main"
		}
	}
	return out, nil
}

// looksLikeModuleName reports whether arg reads as a module name rather
// than an input file: dot-separated capitalized identifiers with no path
// separator or source suffix.
func looksLikeModuleName(arg string) bool {
	if strings.HasSuffix(arg, ".lum") || strings.ContainsAny(arg, `/\`) {
		return false
	}
	for _, seg := range strings.Split(arg, ".") {
		if seg == "" || seg[0] < 'A' || seg[0] > 'Z' {
			return false
		}
	}
	return true
}
