package options

import (
	"fmt"

	"github.com/lumenlang/lumenc/internal/fancy"
)

func toggle(enabled bool) string {
	if enabled {
		return fancy.EnabledStyle.Render("on")
	}
	return fancy.InfoStyle.Render("off")
}

// String renders the configuration as a styled tree, used for verbose
// diagnostics.
func (o Options) String() string {
	t := fancy.Tree()
	t.Root(fancy.RootStyle.Render("lumenc configuration"))

	t.Child(fmt.Sprintf("namespace: %s", fancy.ModuleText(o.Codegen.BrowserNamespace)))
	if o.EntryModule != "" {
		t.Child(fmt.Sprintf("entry module: %s", fancy.ModuleText(o.EntryModule)))
	}

	toggles := fancy.BranchNode("toggles", "")
	toggles.Child(fmt.Sprintf("prelude: %s", toggle(!o.NoPrelude)))
	toggles.Child(fmt.Sprintf("tail-call optimization: %s", toggle(!o.NoTCO)))
	toggles.Child(fmt.Sprintf("effect-block specialization: %s", toggle(!o.NoMagicDo)))
	toggles.Child(fmt.Sprintf("optimization phase: %s", toggle(!o.NoOpts)))
	toggles.Child(fmt.Sprintf("header prefix: %s", toggle(!o.NoPrefix)))
	toggles.Child(fmt.Sprintf("verbose diagnostics: %s", toggle(o.VerboseErrors)))
	t.Child(toggles)

	if len(o.Codegen.DCERoots) > 0 {
		branch := fancy.BranchNode("DCE roots", fmt.Sprintf("(%d)", len(o.Codegen.DCERoots)))
		for _, m := range o.Codegen.DCERoots {
			branch.Child(fancy.ModuleText(m))
		}
		t.Child(branch)
	}

	if len(o.Codegen.CodegenModules) > 0 {
		branch := fancy.BranchNode("codegen modules", fmt.Sprintf("(%d)", len(o.Codegen.CodegenModules)))
		for _, m := range o.Codegen.CodegenModules {
			branch.Child(fancy.ModuleText(m))
		}
		t.Child(branch)
	}

	return t.String()
}
