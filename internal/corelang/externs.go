package corelang

import "strings"

// externs renders the interface descriptor for the emitted modules: one
// block per module listing its externally visible declarations in source
// order.
func externs(modules []*Module) string {
	var sb strings.Builder
	for i, m := range modules {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("module ")
		sb.WriteString(m.Name)
		sb.WriteString("\n")
		for _, d := range m.Decls {
			sb.WriteString("export ")
			sb.WriteString(d.Name)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
