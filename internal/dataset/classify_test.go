package dataset

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  Category
	}{
		{name: "match", query: "MATCH (n:Person) RETURN n", want: CategoryMatch},
		{name: "lowercase match", query: "match (n) return n", want: CategoryMatch},
		{name: "create", query: "CREATE (n:Person {name: 'Ada'})", want: CategoryCreate},
		{name: "merge", query: "MERGE (n:Person {name: 'Ada'})", want: CategoryMerge},
		{name: "read then write is create", query: "MATCH (n) CREATE (m) RETURN n", want: CategoryCreate},
		{name: "read then write is merge", query: "MATCH (n) MERGE (m:Tag) RETURN n", want: CategoryMerge},
		{name: "create wins over merge", query: "MERGE (n) CREATE (m)", want: CategoryCreate},
		{name: "create keyword needs word boundary", query: "MATCH (n) WHERE n.CREATED > 0 RETURN n", want: CategoryMatch},
		{name: "delete", query: "DELETE n", want: CategoryDelete},
		{name: "set", query: "SET n.age = 31", want: CategorySet},
		{name: "remove", query: "REMOVE n.age", want: CategoryRemove},
		{name: "return", query: "RETURN 1", want: CategoryReturn},
		{name: "with", query: "WITH n RETURN n", want: CategoryWith},
		{name: "unwind", query: "UNWIND [1,2,3] AS x RETURN x", want: CategoryUnwind},
		{name: "union", query: "UNION ALL", want: CategoryUnion},
		{name: "call", query: "CALL db.labels()", want: CategoryCall},
		{name: "foreach", query: "FOREACH (x IN [1] | SET n.v = x)", want: CategoryForeach},
		{name: "call with create is create", query: "CALL { CREATE (n:Log) } IN TRANSACTIONS", want: CategoryCreate},
		{name: "unknown keyword", query: "SHOW DATABASES", want: CategoryOther},
		{name: "explain prefix", query: "EXPLAIN MATCH (n) RETURN n", want: CategoryOther},
		{name: "empty", query: "", want: CategoryEmpty},
		{name: "whitespace only", query: "   \n\t ", want: CategoryEmpty},
		{name: "line comment only", query: "// nothing here", want: CategoryEmpty},
		{name: "block comment only", query: "/* nothing\nhere */", want: CategoryEmpty},
		{name: "comment before match", query: "// find people\nMATCH (n) RETURN n", want: CategoryMatch},
		{name: "block comment before set", query: "/* update */ SET n.age = 1", want: CategorySet},
		{name: "create inside comment is ignored", query: "// CREATE\nMATCH (n) RETURN n", want: CategoryMatch},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.query); got != tt.want {
				t.Fatalf("Classify(%q) = %s, want %s", tt.query, got, tt.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	queries := []string{
		"MATCH (n) RETURN n",
		"MATCH (n) CREATE (m)",
		"",
		"garbage input",
	}
	for _, query := range queries {
		first := Classify(query)
		for i := 0; i < 5; i++ {
			if got := Classify(query); got != first {
				t.Fatalf("Classify(%q) not deterministic: %s then %s", query, first, got)
			}
		}
	}
}
