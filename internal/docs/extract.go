// Package docs mines question/query training pairs from Cypher code
// blocks in markdown documentation.
package docs

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Example is one mined documentation pair.
type Example struct {
	Question string
	Cypher   string
}

// minCypherLength filters out fragments too short to be usable queries.
const minCypherLength = 10

var cypherKeywords = []string{
	"MATCH", "CREATE", "MERGE", "DELETE", "SET", "REMOVE",
	"RETURN", "WITH", "WHERE", "UNWIND", "UNION", "CALL", "FOREACH",
}

// ExtractExamples parses a markdown document and returns one example per
// Cypher fenced code block, pairing each query with the nearest preceding
// heading as its question. Blocks without a cypher info string are still
// accepted when their content reads like Cypher. Repeated queries within
// one document are dropped.
func ExtractExamples(source []byte) []Example {
	reader := text.NewReader(source)
	doc := goldmark.DefaultParser().Parse(reader)

	examples := make([]Example, 0)
	heading := ""
	seen := make(map[string]bool)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			heading = nodeText(node, source)
		case *ast.FencedCodeBlock:
			cypher, ok := codeBlockCypher(node, source)
			if !ok {
				return ast.WalkContinue, nil
			}
			key := strings.ToLower(cypher)
			if seen[key] {
				return ast.WalkContinue, nil
			}
			seen[key] = true
			examples = append(examples, Example{
				Question: questionFor(heading, cypher),
				Cypher:   cypher,
			})
		}
		return ast.WalkContinue, nil
	})

	return examples
}

// codeBlockCypher returns the block content when the block is marked or
// recognizable as Cypher.
func codeBlockCypher(block *ast.FencedCodeBlock, source []byte) (string, bool) {
	language := strings.ToLower(string(block.Language(source)))

	var builder strings.Builder
	segments := block.Lines()
	for i := 0; i < segments.Len(); i++ {
		segment := segments.At(i)
		builder.Write(segment.Value(source))
	}
	cypher := strings.TrimSpace(builder.String())

	if len(cypher) < minCypherLength {
		return "", false
	}
	switch language {
	case "cypher", "neo4j":
	case "":
		if !looksLikeCypher(cypher) {
			return "", false
		}
	default:
		return "", false
	}
	if !balanced(cypher) {
		return "", false
	}
	return cypher, true
}

func looksLikeCypher(content string) bool {
	upper := strings.ToUpper(content)
	for _, keyword := range cypherKeywords {
		if strings.Contains(upper, keyword) {
			return true
		}
	}
	return false
}

func balanced(content string) bool {
	return strings.Count(content, "(") == strings.Count(content, ")") &&
		strings.Count(content, "[") == strings.Count(content, "]") &&
		strings.Count(content, "{") == strings.Count(content, "}")
}

// questionFor prefers the section heading; when none is available it
// falls back to a generic phrasing keyed on the leading clause.
func questionFor(heading string, cypher string) string {
	heading = strings.TrimSpace(heading)
	if heading != "" {
		return heading
	}

	upper := strings.ToUpper(cypher)
	switch {
	case strings.HasPrefix(upper, "CREATE"):
		return "Create nodes and relationships in the graph"
	case strings.HasPrefix(upper, "MERGE"):
		return "Merge nodes and relationships, creating them if they don't exist"
	case strings.HasPrefix(upper, "DELETE") || strings.Contains(upper, "DELETE"):
		return "Delete nodes or relationships from the graph"
	case strings.HasPrefix(upper, "SET"):
		return "Set properties or labels on nodes or relationships"
	default:
		return "Write a Cypher query for this pattern"
	}
}

func nodeText(n ast.Node, source []byte) string {
	var builder strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if textNode, ok := child.(*ast.Text); ok {
			builder.Write(textNode.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return builder.String()
}
