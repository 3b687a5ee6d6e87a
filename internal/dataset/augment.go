package dataset

import (
	"fmt"
	"regexp"
	"strings"
)

// matchNodePattern captures the first node pattern of a MATCH clause:
// variable, label, and an optional inline property map.
var matchNodePattern = regexp.MustCompile(`(?i)MATCH\s*\((\w*)\s*:\s*(\w+)\s*(\{[^}]*\})?\s*\)`)

// CreateAugmenter synthesizes CREATE examples from MATCH examples by
// lifting the first node pattern of the source query into a CREATE
// statement and rephrasing the question. Deterministic: the same source
// list always yields the same output, and sources are never mutated.
// Untransformable or repeated queries are skipped, so fewer than the
// requested count may be returned.
type CreateAugmenter struct {
	Dialect string
}

// Augment implements the Augmenter contract consumed by Rebalance.
func (a CreateAugmenter) Augment(source []Example, requested int) []Example {
	dialect := a.Dialect
	if dialect == "" {
		dialect = "cypher"
	}

	out := make([]Example, 0, requested)
	seen := make(map[string]bool)
	for _, example := range source {
		if len(out) >= requested {
			break
		}
		query := ExtractQuery(example.Text)
		m := matchNodePattern.FindStringSubmatch(query)
		if m == nil {
			continue
		}

		variable := m[1]
		if variable == "" {
			variable = "n"
		}
		label := m[2]
		props := m[3]

		pattern := fmt.Sprintf("%s:%s", variable, label)
		if props != "" {
			pattern += " " + props
		}
		cypher := fmt.Sprintf("CREATE (%s) RETURN %s", pattern, variable)
		if seen[cypher] {
			continue
		}
		seen[cypher] = true

		question := fmt.Sprintf("Create a new %s node", label)
		if props != "" {
			question = fmt.Sprintf("Create a new %s node with properties %s", label, strings.TrimSpace(props))
		}

		text := FormatChatML(question, cypher, SchemaFromCypher(cypher), dialect)
		out = append(out, NewExample(text))
	}
	return out
}
