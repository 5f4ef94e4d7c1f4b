package sodasql

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Statement names shared by every template set.
const (
	StmtCheckCollection  = "checkcollection"
	StmtCreateCollection = "createcollection"
	StmtCreate           = "create"
	StmtUpdate           = "update"
	StmtUpsert           = "upsert"
	StmtRetrieve         = "retrieve"
	StmtDelete           = "delete"
	StmtFilter           = "filter"
)

// Placeholders substituted into statements before execution.
const (
	PlaceholderCollection = "[[COLLECTIONNAME]]"
	PlaceholderWhere      = "[[WHERE]]"
	PlaceholderOrderBy    = "[[ORDERBY]]"
	PlaceholderPagination = "[[PAGINATION]]"
	PlaceholderSkip       = "[[SKIPPART]]"
	PlaceholderLimit      = "[[LIMITPART]]"
)

//go:embed templates.yaml
var nativeYAML []byte

// Templates looks statements up by name.
type Templates interface {
	Statement(name string) (string, error)
}

// TemplateSet is a Templates backed by a map.
type TemplateSet map[string]string

// Statement returns the named statement or an error when the set does not
// hold it.
func (s TemplateSet) Statement(name string) (string, error) {
	stmt, ok := s[name]
	if !ok || strings.TrimSpace(stmt) == "" {
		return "", fmt.Errorf("query %s was not found", name)
	}
	return stmt, nil
}

// LoadTemplates parses a YAML mapping of statement names to statements.
func LoadTemplates(data []byte) (TemplateSet, error) {
	set := TemplateSet{}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse statement templates: %w", err)
	}
	return set, nil
}

// MustLoadTemplates is LoadTemplates for embedded sets. It panics on error.
func MustLoadTemplates(data []byte) TemplateSet {
	set, err := LoadTemplates(data)
	if err != nil {
		panic(err)
	}
	return set
}

var native = MustLoadTemplates(nativeYAML)

// NativeTemplates returns the statements of the native SQL provider.
func NativeTemplates() Templates {
	return native
}

type overlay struct {
	primary  Templates
	fallback Templates
}

// Overlay returns templates that look in primary first and fall back to
// fallback for names primary does not hold.
func Overlay(primary, fallback Templates) Templates {
	return overlay{primary: primary, fallback: fallback}
}

func (o overlay) Statement(name string) (string, error) {
	if stmt, err := o.primary.Statement(name); err == nil {
		return stmt, nil
	}
	return o.fallback.Statement(name)
}

// Render replaces placeholders in a statement. Pairs are placeholder and
// value, in that order.
func Render(stmt string, pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(stmt)
}
