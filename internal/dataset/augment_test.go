package dataset

import (
	"fmt"
	"strings"
	"testing"
)

func TestCreateAugmenter(t *testing.T) {
	t.Parallel()

	source := []Example{
		NewExample(FormatChatML("Find all people", "MATCH (p:Person) RETURN p", "", "cypher")),
		NewExample(FormatChatML("Find movies from 1999", "MATCH (m:Movie {year: 1999}) RETURN m", "", "cypher")),
		NewExample(FormatChatML("Anonymous variable", "MATCH (:Tag) RETURN count(*)", "", "cypher")),
		NewExample(FormatChatML("No node pattern", "RETURN 1", "", "cypher")),
	}

	out := CreateAugmenter{Dialect: "cypher"}.Augment(source, 10)
	if len(out) != 3 {
		t.Fatalf("augmented %d examples, want 3", len(out))
	}

	queries := make([]string, 0, len(out))
	for _, example := range out {
		if example.Category != CategoryCreate {
			t.Fatalf("augmented category = %s, want CREATE", example.Category)
		}
		queries = append(queries, ExtractQuery(example.Text))
	}

	if queries[0] != "CREATE (p:Person) RETURN p" {
		t.Fatalf("first query = %q", queries[0])
	}
	if queries[1] != "CREATE (m:Movie {year: 1999}) RETURN m" {
		t.Fatalf("second query = %q", queries[1])
	}
	if queries[2] != "CREATE (n:Tag) RETURN n" {
		t.Fatalf("anonymous variable query = %q", queries[2])
	}

	if q := ExtractQuestion(out[0].Text); q != "Create a new Person node" {
		t.Fatalf("first question = %q", q)
	}
	if q := ExtractQuestion(out[1].Text); !strings.Contains(q, "with properties {year: 1999}") {
		t.Fatalf("property question = %q", q)
	}
}

func TestCreateAugmenter_RespectsRequestedCount(t *testing.T) {
	t.Parallel()

	source := make([]Example, 0, 20)
	for i := 0; i < 20; i++ {
		cypher := fmt.Sprintf("MATCH (v:Label%d) RETURN v", i)
		source = append(source, NewExample(FormatChatML(fmt.Sprintf("q %d", i), cypher, "", "cypher")))
	}

	out := CreateAugmenter{}.Augment(source, 5)
	if len(out) != 5 {
		t.Fatalf("augmented %d examples, want 5", len(out))
	}
}

func TestCreateAugmenter_SkipsDuplicateDerivations(t *testing.T) {
	t.Parallel()

	source := []Example{
		NewExample(FormatChatML("Find people", "MATCH (p:Person) RETURN p", "", "cypher")),
		NewExample(FormatChatML("Find people by name", "MATCH (p:Person) RETURN p.name", "", "cypher")),
		NewExample(FormatChatML("Count people", "MATCH (p:Person) RETURN count(p)", "", "cypher")),
	}

	out := CreateAugmenter{}.Augment(source, 10)
	if len(out) != 1 {
		t.Fatalf("augmented %d examples, want 1 after dedup", len(out))
	}
}

func TestCreateAugmenter_Deterministic(t *testing.T) {
	t.Parallel()

	source := []Example{
		NewExample(FormatChatML("Find people", "MATCH (p:Person) RETURN p", "", "cypher")),
		NewExample(FormatChatML("Find tags", "MATCH (t:Tag) RETURN t", "", "cypher")),
	}

	first := CreateAugmenter{}.Augment(source, 2)
	second := CreateAugmenter{}.Augment(source, 2)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text {
			t.Fatalf("output differs at index %d", i)
		}
	}
}
