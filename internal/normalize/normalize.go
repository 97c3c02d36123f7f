// Package normalize canonicalizes general-information field labels and
// energy type names, and coerces free-text values to numbers. The alias
// tables are embedded data rather than code so that newly observed label
// spellings only need a table edit.
package normalize

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasesYAML []byte

type aliasTables struct {
	fields  map[string]string
	energy  map[string]string
	product map[string]bool
}

var canon = mustLoad(aliasesYAML)

func mustLoad(data []byte) *aliasTables {
	t, err := load(data)
	if err != nil {
		panic(err)
	}
	return t
}

func load(data []byte) (*aliasTables, error) {
	var raw struct {
		Fields        map[string]string `yaml:"fields"`
		Energy        map[string]string `yaml:"energy"`
		ProductFields []string          `yaml:"product_fields"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "normalize: parse alias tables")
	}

	t := &aliasTables{
		fields:  make(map[string]string, len(raw.Fields)),
		energy:  make(map[string]string, len(raw.Energy)),
		product: make(map[string]bool, len(raw.ProductFields)),
	}
	for label, key := range raw.Fields {
		t.fields[strings.ToLower(strings.TrimSpace(label))] = key
	}
	for label, key := range raw.Energy {
		t.energy[strings.ToLower(strings.TrimSpace(label))] = key
	}
	for _, key := range raw.ProductFields {
		t.product[key] = true
	}
	return t, nil
}

var (
	colonChars = regexp.MustCompile(`[:]+`)
	spaceRuns  = regexp.MustCompile(`\s+`)
)

func cleanLabel(label string) string {
	cleaned := colonChars.ReplaceAllString(label, "")
	return strings.TrimSpace(spaceRuns.ReplaceAllString(cleaned, " "))
}

// FieldKey returns the canonical name for a general-information label and
// reports whether the label matched the alias table. Unknown labels fall
// back to a slug of the cleaned label, so the result is never ambiguous
// across calls: the same input always yields the same key, and canonical
// keys map to themselves.
func FieldKey(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if key, ok := canon.fields[strings.ToLower(trimmed)]; ok {
		return key, true
	}
	cleaned := cleanLabel(trimmed)
	if key, ok := canon.fields[strings.ToLower(cleaned)]; ok {
		return key, true
	}
	return fieldSlug(cleaned), false
}

// EnergyType returns the canonical name for an energy or waste stream label.
func EnergyType(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if key, ok := canon.energy[strings.ToLower(trimmed)]; ok {
		return key
	}
	return energySlug(trimmed)
}

// ProductKey reports whether a canonical field carries a product name and
// should keep its raw string value instead of a numeric coercion. Aliased
// keys consult the table; fallback keys count when the slug mentions a
// product.
func ProductKey(key string, aliased bool) bool {
	if aliased {
		return canon.product[key]
	}
	return strings.Contains(key, "product")
}

func fieldSlug(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func energySlug(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	lower = strings.ReplaceAll(lower, "&", "and")
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r == ' ' || r == '-' || r == '/':
			b.WriteByte('_')
		case r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
