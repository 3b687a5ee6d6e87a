package dataset

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	assistantBlockPattern  = regexp.MustCompile(`(?s)<\|assistant\|>\s*\n(.*?)\n<\|end\|>`)
	assistantInlinePattern = regexp.MustCompile(`(?s)<\|assistant\|>(.*?)<\|end\|>`)
	assistantTailPattern   = regexp.MustCompile(`(?s)<\|assistant\|>(.*)`)
	userBlockPattern       = regexp.MustCompile(`(?s)<\|user\|>\s*\n(.*?)\n<\|end\|>`)
	userInlinePattern      = regexp.MustCompile(`(?s)<\|user\|>(.*?)<\|end\|>`)
	endTagTailPattern      = regexp.MustCompile(`(?s)<\|end\|>.*`)
)

// tailKeywords gates the last-resort extraction fallback: content after an
// unterminated assistant tag is only accepted when it opens like a query.
var tailKeywords = []string{"MATCH", "CREATE", "MERGE", "DELETE", "RETURN", "WITH"}

// ExtractQuery returns the Cypher query embedded in a ChatML-formatted
// text, or "" when no assistant block can be located.
func ExtractQuery(text string) string {
	if m := assistantBlockPattern.FindStringSubmatch(text); m != nil {
		if query := strings.TrimSpace(m[1]); query != "" {
			return query
		}
	}
	if m := assistantInlinePattern.FindStringSubmatch(text); m != nil {
		if query := strings.TrimSpace(m[1]); query != "" {
			return query
		}
	}
	if m := assistantTailPattern.FindStringSubmatch(text); m != nil {
		query := strings.TrimSpace(endTagTailPattern.ReplaceAllString(m[1], ""))
		upper := strings.ToUpper(query)
		for _, keyword := range tailKeywords {
			if strings.HasPrefix(upper, keyword) {
				return query
			}
		}
	}
	return ""
}

// ExtractQuestion returns the user question embedded in a ChatML-formatted
// text. When no user block can be located it falls back to the first 100
// characters of the text, which keeps question-based deduplication stable
// for malformed records.
func ExtractQuestion(text string) string {
	if m := userBlockPattern.FindStringSubmatch(text); m != nil {
		if question := strings.TrimSpace(m[1]); question != "" {
			return question
		}
	}
	if m := userInlinePattern.FindStringSubmatch(text); m != nil {
		if question := strings.TrimSpace(m[1]); question != "" {
			return question
		}
	}
	// Rune-based so the cut never splits a multi-byte character.
	runes := []rune(text)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return text
}

// FormatChatML renders a question/query pair as a ChatML training text.
func FormatChatML(question string, cypher string, schema string, dialect string) string {
	system := fmt.Sprintf("Dialect: %s", dialect)
	if schema != "" {
		system += fmt.Sprintf("\nSchema:\n%s", schema)
	}
	return fmt.Sprintf(
		"<|system|>\n%s\n<|end|>\n<|user|>\n%s\n<|end|>\n<|assistant|>\n%s\n<|end|>",
		system,
		question,
		cypher,
	)
}
