package dataset

import (
	"strings"
	"testing"
)

func TestSchemaFromCypher(t *testing.T) {
	t.Parallel()

	schema := SchemaFromCypher("MATCH (p:Person)-[:ACTED_IN]->(m:Movie) RETURN p, m")
	for _, want := range []string{"- **Movie**", "- **Person**", "(:Node)-[:ACTED_IN]->(:Node)"} {
		if !strings.Contains(schema, want) {
			t.Fatalf("schema missing %q:\n%s", want, schema)
		}
	}

	// Labels are sorted and unique.
	if strings.Index(schema, "Movie") > strings.Index(schema, "Person") {
		t.Fatalf("labels not sorted:\n%s", schema)
	}
	if strings.Count(schema, "- **Person**") != 1 {
		t.Fatalf("Person listed more than once:\n%s", schema)
	}
}

func TestSchemaFromCypher_NoPatterns(t *testing.T) {
	t.Parallel()

	if got := SchemaFromCypher("RETURN 1"); got != "" {
		t.Fatalf("schema = %q, want empty", got)
	}
}

func TestCanonicalizeSchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "whitespace runs", in: "Node   properties:\n\n- **Person**", want: "Node properties: - **Person**"},
		{name: "paren padding", in: "( :Person )-[ :KNOWS ]->( :Person )", want: "(:Person)-[:KNOWS]->(:Person)"},
		{name: "leading and trailing", in: "  schema  ", want: "schema"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CanonicalizeSchema(tt.in); got != tt.want {
				t.Fatalf("CanonicalizeSchema(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidCypher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "match", query: "MATCH (n) RETURN n", want: true},
		{name: "where fragment", query: "WHERE n.age > 30", want: true},
		{name: "order by fragment", query: "ORDER BY n.name LIMIT 10", want: true},
		{name: "empty", query: "", want: false},
		{name: "whitespace", query: "   ", want: false},
		{name: "no keywords", query: "hello world ()", want: false},
		{name: "unbalanced parens", query: "MATCH (n RETURN n", want: false},
		{name: "unbalanced brackets", query: "MATCH (n)-[:KNOWS->(m) RETURN n", want: false},
		{name: "unbalanced braces", query: "CREATE (n:Person {name: 'Ada') RETURN n", want: false},
		{name: "balanced with props", query: "CREATE (n:Person {name: 'Ada'}) RETURN n", want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidCypher(tt.query); got != tt.want {
				t.Fatalf("ValidCypher(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
