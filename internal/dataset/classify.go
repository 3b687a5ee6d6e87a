package dataset

import (
	"regexp"
	"strings"
)

var (
	lineCommentPattern   = regexp.MustCompile(`//[^\n]*`)
	blockCommentPattern  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	createKeywordPattern = regexp.MustCompile(`\bCREATE\b`)
	mergeKeywordPattern  = regexp.MustCompile(`\bMERGE\b`)
)

// prefixOrder is the fixed priority for leading-keyword matching, applied
// after the write-keyword checks.
var prefixOrder = []Category{
	CategoryMatch,
	CategoryDelete,
	CategorySet,
	CategoryRemove,
	CategoryReturn,
	CategoryWith,
	CategoryUnwind,
	CategoryUnion,
	CategoryCall,
	CategoryForeach,
}

// Classify assigns a command type to a Cypher query. Write keywords win
// over reads: a query that opens with MATCH but contains CREATE or MERGE
// anywhere is balanced as a write. Blank queries classify as
// CategoryEmpty, unrecognized ones as CategoryOther; Classify never fails.
func Classify(queryText string) Category {
	upper := strings.ToUpper(queryText)
	upper = lineCommentPattern.ReplaceAllString(upper, "")
	upper = blockCommentPattern.ReplaceAllString(upper, "")
	upper = strings.TrimSpace(upper)

	if upper == "" {
		return CategoryEmpty
	}
	if createKeywordPattern.MatchString(upper) {
		return CategoryCreate
	}
	if mergeKeywordPattern.MatchString(upper) {
		return CategoryMerge
	}
	for _, category := range prefixOrder {
		if strings.HasPrefix(upper, string(category)) {
			return category
		}
	}
	return CategoryOther
}
