// Package evalcases holds the fixed prompt suite used to compare model
// checkpoints qualitatively. The suite is written as JSONL and consumed by
// an external inference runner; inference itself is out of scope here.
package evalcases

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Case is one qualitative comparison prompt.
type Case struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	SystemPrompt string `json:"system_prompt"`
	UserPrompt   string `json:"user_prompt"`
	ExpectedType string `json:"expected_type"`
}

const personSchema = "Dialect: cypher\nSchema:\nNode properties:\n- **Person**\n  - `name`: STRING\n  - `age`: INTEGER\nRelationships:\nNone"

const movieSchema = "Dialect: cypher\nSchema:\nNode properties:\n- **Movie**\n  - `title`: STRING\n  - `released`: INTEGER\nRelationships:\nNone"

const actedInSchema = "Dialect: cypher\nSchema:\nNode properties:\n- **Person**\n  - `name`: STRING\n- **Movie**\n  - `title`: STRING\nRelationships:\n(:Person)-[:ACTED_IN]->(:Movie)"

const productSchema = "Dialect: cypher\nSchema:\nNode properties:\n- **Product**\n  - `name`: STRING\n  - `price`: FLOAT\nRelationships:\nNone"

var cases = []Case{
	{
		ID:           "match_001",
		Category:     "basic_match",
		SystemPrompt: personSchema,
		UserPrompt:   "Find all people",
		ExpectedType: "cypher",
	},
	{
		ID:           "match_002",
		Category:     "basic_match",
		SystemPrompt: movieSchema,
		UserPrompt:   "List all movies",
		ExpectedType: "cypher",
	},
	{
		ID:           "where_001",
		Category:     "where_filter",
		SystemPrompt: personSchema,
		UserPrompt:   "Find people older than 30",
		ExpectedType: "cypher",
	},
	{
		ID:           "where_002",
		Category:     "where_filter",
		SystemPrompt: productSchema,
		UserPrompt:   "Find products with price less than 100",
		ExpectedType: "cypher",
	},
	{
		ID:           "rel_001",
		Category:     "relationship",
		SystemPrompt: actedInSchema,
		UserPrompt:   "Find all actors who acted in The Matrix",
		ExpectedType: "cypher",
	},
	{
		ID:           "agg_001",
		Category:     "aggregation",
		SystemPrompt: actedInSchema,
		UserPrompt:   "Count how many movies each person acted in",
		ExpectedType: "cypher",
	},
	{
		ID:           "create_001",
		Category:     "create",
		SystemPrompt: personSchema,
		UserPrompt:   "Create a person named Alice aged 30",
		ExpectedType: "cypher",
	},
	{
		ID:           "create_002",
		Category:     "create",
		SystemPrompt: movieSchema,
		UserPrompt:   "Add a new movie titled Inception released in 2010",
		ExpectedType: "cypher",
	},
	{
		ID:           "merge_001",
		Category:     "merge",
		SystemPrompt: personSchema,
		UserPrompt:   "Ensure a person named Bob exists",
		ExpectedType: "cypher",
	},
	{
		ID:           "update_001",
		Category:     "update",
		SystemPrompt: personSchema,
		UserPrompt:   "Set the age of Alice to 31",
		ExpectedType: "cypher",
	},
	{
		ID:           "delete_001",
		Category:     "delete",
		SystemPrompt: personSchema,
		UserPrompt:   "Delete the person named Carol",
		ExpectedType: "cypher",
	},
	{
		ID:           "order_001",
		Category:     "ordering",
		SystemPrompt: movieSchema,
		UserPrompt:   "List the five most recent movies",
		ExpectedType: "cypher",
	},
}

// Cases returns a copy of the comparison suite.
func Cases() []Case {
	out := make([]Case, len(cases))
	copy(out, cases)
	return out
}

// Write writes the suite as JSONL.
func Write(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cases file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, c := range cases {
		if err := encoder.Encode(c); err != nil {
			return fmt.Errorf("encode case %s: %w", c.ID, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush cases file: %w", err)
	}
	return nil
}
