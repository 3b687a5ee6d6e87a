package dataset

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	nodeLabelPattern = regexp.MustCompile(`\([^)]*:(\w+)`)
	relTypePattern   = regexp.MustCompile(`\[[^\]]*:(\w+)`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	openParenSpace   = regexp.MustCompile(`\(\s+`)
	closeParenSpace  = regexp.MustCompile(`\s+\)`)
	openBrackSpace   = regexp.MustCompile(`\[\s+`)
	closeBrackSpace  = regexp.MustCompile(`\s+\]`)
)

// validationKeywords is the keyword set ValidCypher requires at least one
// of. WHERE, ORDER BY, and LIMIT count: fragments that carry them are still
// usable training targets.
var validationKeywords = []string{
	"MATCH", "CREATE", "MERGE", "DELETE", "SET", "REMOVE",
	"RETURN", "WITH", "WHERE", "ORDER BY", "LIMIT",
}

// SchemaFromCypher derives a minimal schema block from the node labels and
// relationship types mentioned in a query. Used for sources that supply a
// query without a schema. Returns "" when the query mentions neither.
func SchemaFromCypher(cypher string) string {
	labels := uniqueMatches(nodeLabelPattern, cypher)
	relationships := uniqueMatches(relTypePattern, cypher)
	if len(labels) == 0 && len(relationships) == 0 {
		return ""
	}

	lines := []string{"Node properties:"}
	for _, label := range labels {
		lines = append(lines, fmt.Sprintf("- **%s**", label))
		lines = append(lines, "  - `name`: STRING")
	}
	if len(relationships) > 0 {
		lines = append(lines, "Relationships:")
		for _, relType := range relationships {
			lines = append(lines, fmt.Sprintf("(:Node)-[:%s]->(:Node)", relType))
		}
	}
	return strings.Join(lines, "\n")
}

func uniqueMatches(pattern *regexp.Regexp, text string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		out = append(out, m[1])
	}
	sort.Strings(out)
	return out
}

// CanonicalizeSchema normalizes schema whitespace so schemas from different
// sources compare and dedupe consistently.
func CanonicalizeSchema(schema string) string {
	schema = whitespaceRuns.ReplaceAllString(strings.TrimSpace(schema), " ")
	schema = openParenSpace.ReplaceAllString(schema, "(")
	schema = closeParenSpace.ReplaceAllString(schema, ")")
	schema = openBrackSpace.ReplaceAllString(schema, "[")
	schema = closeBrackSpace.ReplaceAllString(schema, "]")
	return schema
}

// ValidCypher performs a cheap sanity check: the query must mention at
// least one Cypher keyword and have balanced parentheses, brackets, and
// braces. It is not a parser.
func ValidCypher(cypher string) bool {
	if strings.TrimSpace(cypher) == "" {
		return false
	}
	upper := strings.ToUpper(cypher)
	hasKeyword := false
	for _, keyword := range validationKeywords {
		if strings.Contains(upper, keyword) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return false
	}
	return strings.Count(cypher, "(") == strings.Count(cypher, ")") &&
		strings.Count(cypher, "[") == strings.Count(cypher, "]") &&
		strings.Count(cypher, "{") == strings.Count(cypher, "}")
}
