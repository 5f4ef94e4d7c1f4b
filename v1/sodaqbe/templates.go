package sodaqbe

import (
	_ "embed"

	"github.com/Aleph-Alpha/docstore/v1/sodasql"
)

//go:embed templates.yaml
var qbeYAML []byte

var qbe = sodasql.MustLoadTemplates(qbeYAML)

// Templates returns the query-by-example statements layered over the
// native ones.
func Templates() sodasql.Templates {
	return sodasql.Overlay(qbe, sodasql.NativeTemplates())
}
