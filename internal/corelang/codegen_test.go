package corelang

import (
	"strings"
	"testing"

	"github.com/lumenlang/lumenc/internal/compiler/input"
	"github.com/lumenlang/lumenc/internal/compiler/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSources(t *testing.T, sources ...string) []*Module {
	t.Helper()
	units := make([]input.SourceUnit, len(sources))
	for i, src := range sources {
		units[i] = input.SourceUnit{Text: src}
	}
	modules, err := ParseModules(units)
	require.NoError(t, err)
	return modules
}

func compileSources(t *testing.T, opts options.Options, sources ...string) Artifacts {
	t.Helper()
	artifacts, err := Compile(opts, parseSources(t, sources...), nil)
	require.NoError(t, err)
	return artifacts
}

func TestCompileSimpleModule(t *testing.T) {
	artifacts := compileSources(t, options.New(), "module A\nx = 1\ns = \"hi\"\n")

	code := artifacts.Code
	assert.Contains(t, code, "var PS = PS || {};\n")
	assert.Contains(t, code, `PS["A"] = (function () {`)
	assert.Contains(t, code, "  var x = 1;\n")
	assert.Contains(t, code, `  var s = "hi";`)
	assert.Contains(t, code, `return {"x": x, "s": s};`)
	assert.True(t, strings.HasSuffix(code, "})();\n"))
}

func TestCompileBrowserNamespace(t *testing.T) {
	artifacts := compileSources(t,
		options.New(options.WithBrowserNamespace("App")),
		"module A\nx = 1\nmodule B\ny = A.x\n")

	assert.Contains(t, artifacts.Code, "var App = App || {};\n")
	assert.Contains(t, artifacts.Code, `App["A"]`)
	assert.Contains(t, artifacts.Code, `App["A"].x`)
	assert.NotContains(t, artifacts.Code, "PS[")
}

func TestCompilePrefixLines(t *testing.T) {
	artifacts, err := Compile(options.New(),
		parseSources(t, "module A\nx = 1\n"),
		[]string{"Generated by lumenc version 9.9.9", "second line"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(artifacts.Code,
		"// Generated by lumenc version 9.9.9\n// second line\nvar PS = PS || {};\n"))
}

func TestCompileDependencyOrder(t *testing.T) {
	// B is handed to the compiler first but depends on A, so A is emitted
	// first.
	artifacts := compileSources(t, options.New(),
		"module B\ny = A.x\n",
		"module A\nx = 1\n")

	code := artifacts.Code
	assert.Less(t, strings.Index(code, `PS["A"]`), strings.Index(code, `PS["B"]`))
}

func TestCompileDeadCodeElimination(t *testing.T) {
	sources := []string{
		"module A\nx = 1\n",
		"module B\ny = A.x\n",
		"module C\nz = 2\n",
	}

	t.Run("closure of root B", func(t *testing.T) {
		artifacts := compileSources(t, options.New(options.WithDCERoot("B")), sources...)
		assert.Contains(t, artifacts.Code, `PS["A"]`)
		assert.Contains(t, artifacts.Code, `PS["B"]`)
		assert.NotContains(t, artifacts.Code, `PS["C"]`)
	})

	t.Run("leaf root keeps only itself", func(t *testing.T) {
		artifacts := compileSources(t, options.New(options.WithDCERoot("C")), sources...)
		assert.NotContains(t, artifacts.Code, `PS["A"]`)
		assert.NotContains(t, artifacts.Code, `PS["B"]`)
		assert.Contains(t, artifacts.Code, `PS["C"]`)
	})

	t.Run("unknown root eliminates everything", func(t *testing.T) {
		artifacts := compileSources(t, options.New(options.WithDCERoot("Nope")), sources...)
		assert.NotContains(t, artifacts.Code, "PS[\"")
		assert.Empty(t, artifacts.Externs)
	})
}

func TestCompileCodegenRestriction(t *testing.T) {
	artifacts := compileSources(t,
		options.New(options.WithCodegenModule("B")),
		"module A\nx = 1\n",
		"module B\ny = A.x\n")

	assert.NotContains(t, artifacts.Code, `PS["A"] =`)
	assert.Contains(t, artifacts.Code, `PS["B"] =`)
	assert.Equal(t, "module B\nexport y\n", artifacts.Externs)
}

func TestCompileEntryModule(t *testing.T) {
	artifacts := compileSources(t,
		options.New(options.WithEntryModule("Main")),
		"module Main\nstep = \\u -> 0\nmain = do step end\n")

	assert.True(t, strings.HasSuffix(artifacts.Code, "PS[\"Main\"].main();\n"))
}

func TestCompileEntryModuleMissing(t *testing.T) {
	_, err := Compile(options.New(options.WithEntryModule("Main")),
		parseSources(t, "module A\nx = 1\n"), nil)
	assert.ErrorIs(t, err, ErrEntryModule)
}

func TestCompileEntryPointMissing(t *testing.T) {
	_, err := Compile(options.New(options.WithEntryModule("A")),
		parseSources(t, "module A\nx = 1\n"), nil)
	assert.ErrorIs(t, err, ErrEntryPointMissing)
}

func TestCompileEntryModuleEliminated(t *testing.T) {
	modules := parseSources(t,
		"module A\nx = 1\n",
		"module Main\nstep = \\u -> 0\nmain = do step end\n")

	t.Run("outside the dead-code-elimination closure", func(t *testing.T) {
		_, err := Compile(options.New(
			options.WithDCERoot("A"),
			options.WithEntryModule("Main"),
		), modules, nil)
		assert.ErrorIs(t, err, ErrEntryModule)
	})

	t.Run("excluded by the codegen restriction", func(t *testing.T) {
		_, err := Compile(options.New(
			options.WithCodegenModule("A"),
			options.WithEntryModule("Main"),
		), modules, nil)
		assert.ErrorIs(t, err, ErrEntryModule)
	})

	t.Run("retained entry module still compiles", func(t *testing.T) {
		artifacts, err := Compile(options.New(
			options.WithDCERoot("Main"),
			options.WithEntryModule("Main"),
		), modules, nil)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(artifacts.Code, "PS[\"Main\"].main();\n"))
		assert.NotContains(t, artifacts.Code, `PS["A"] =`)
	})
}

func TestCompileOptimizationInlinesLiterals(t *testing.T) {
	src := "module M\nx = 42\nf = \\x -> x\ny = x\n"

	t.Run("enabled by default", func(t *testing.T) {
		artifacts := compileSources(t, options.New(), src)
		assert.Contains(t, artifacts.Code, "  var y = 42;\n")
		// The lambda parameter shadows the module-level literal.
		assert.Contains(t, artifacts.Code, "var f = function (x) { return x; };")
	})

	t.Run("disabled with no-opts", func(t *testing.T) {
		artifacts := compileSources(t, options.New(options.WithNoOpts()), src)
		assert.Contains(t, artifacts.Code, "  var y = x;\n")
	})
}

func TestCompileTailCallOptimization(t *testing.T) {
	src := "module M\nf = \\x -> x\nloop = \\x -> loop (f x)\n"

	t.Run("enabled by default", func(t *testing.T) {
		artifacts := compileSources(t, options.New(), src)
		assert.Contains(t, artifacts.Code, "var loop = function (x) { while (true) { x = f(x); } };")
	})

	t.Run("disabled with no-tco", func(t *testing.T) {
		artifacts := compileSources(t, options.New(options.WithNoTCO()), src)
		assert.NotContains(t, artifacts.Code, "while (true)")
		assert.Contains(t, artifacts.Code, "var loop = function (x) { return loop(f(x)); };")
	})
}

func TestCompileEffectBlocks(t *testing.T) {
	src := "module Main\ns1 = \\u -> 1\ns2 = \\u -> 2\nmain = do s1; s2 end\n"

	t.Run("specialized form by default", func(t *testing.T) {
		artifacts := compileSources(t, options.New(), src)
		assert.Contains(t, artifacts.Code, "var main = function () { s1(); return s2(); };")
		assert.NotContains(t, artifacts.Code, "__bind")
	})

	t.Run("bind chain with no-magic-do", func(t *testing.T) {
		artifacts := compileSources(t, options.New(options.WithNoMagicDo()), src)
		assert.Contains(t, artifacts.Code, "var __bind = function (eff, next)")
		assert.Contains(t, artifacts.Code, "var main = __bind(s1, function () { return s2; });")
	})

	t.Run("single step needs no bind helper", func(t *testing.T) {
		artifacts := compileSources(t, options.New(options.WithNoMagicDo()),
			"module Main\ns1 = \\u -> 1\nmain = do s1 end\n")
		assert.NotContains(t, artifacts.Code, "__bind")
		assert.Contains(t, artifacts.Code, "var main = s1;")
	})
}

func TestCompileValidation(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		wantErr error
	}{
		{
			name:    "unknown local identifier",
			sources: []string{"module A\nx = y\n"},
			wantErr: ErrUnknownIdent,
		},
		{
			name:    "unknown module",
			sources: []string{"module A\nx = B.y\n"},
			wantErr: ErrUnknownModule,
		},
		{
			name:    "unknown declaration in known module",
			sources: []string{"module A\nx = 1\n", "module B\ny = A.missing\n"},
			wantErr: ErrUnknownIdent,
		},
		{
			name:    "duplicate module",
			sources: []string{"module A\nx = 1\n", "module A\ny = 2\n"},
			wantErr: ErrDuplicateModule,
		},
		{
			name:    "cyclic modules",
			sources: []string{"module A\nx = B.y\n", "module B\ny = A.x\n"},
			wantErr: ErrModuleCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(options.New(), parseSources(t, tt.sources...), nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompileExternsFormat(t *testing.T) {
	artifacts := compileSources(t, options.New(),
		"module A\nx = 1\ny = 2\n",
		"module B\nz = A.x\n")

	assert.Equal(t, "module A\nexport x\nexport y\n\nmodule B\nexport z\n", artifacts.Externs)
}

func TestCompileDeterministic(t *testing.T) {
	opts := options.New(options.WithEntryModule("Main"))
	sources := []string{
		"module A\nx = 1\n",
		"module Main\nstep = \\u -> A.x\nmain = do step; step end\n",
	}

	first, err := Compile(opts, parseSources(t, sources...), []string{"header"})
	require.NoError(t, err)
	second, err := Compile(opts, parseSources(t, sources...), []string{"header"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
