package dataset

import "strings"

// DropDuplicateQuestions removes examples whose question, lowercased and
// trimmed, was already seen. The first occurrence wins. Returns the kept
// examples and the number dropped.
func DropDuplicateQuestions(examples []Example) ([]Example, int) {
	seen := make(map[string]bool, len(examples))
	out := make([]Example, 0, len(examples))
	dropped := 0
	for _, example := range examples {
		key := strings.ToLower(strings.TrimSpace(ExtractQuestion(example.Text)))
		if seen[key] {
			dropped++
			continue
		}
		seen[key] = true
		out = append(out, example)
	}
	return out, dropped
}
