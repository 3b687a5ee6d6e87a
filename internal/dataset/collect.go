package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/hivellm/expert-neo4j/internal/docs"
)

type collectionStats struct {
	filesScanned   int
	examplesLoaded int
	missingFields  int
	invalidCypher  int
	invalidLines   int
}

// Collect gathers examples from all configured sources and converts them
// to classified ChatML examples.
func Collect(cfg *BuildConfig) ([]Example, collectionStats, error) {
	if cfg == nil {
		return nil, collectionStats{}, fmt.Errorf("config is required")
	}

	stats := collectionStats{}
	examples := make([]Example, 0)
	for _, source := range cfg.Sources {
		files, err := resolveSourceFiles(source)
		if err != nil {
			return nil, stats, err
		}
		for _, path := range files {
			stats.filesScanned++
			sourceExamples, err := collectFile(cfg, source, path, &stats)
			if err != nil {
				return nil, stats, err
			}
			examples = append(examples, sourceExamples...)
		}
	}
	stats.examplesLoaded = len(examples)
	return examples, stats, nil
}

// resolveSourceFiles walks the source root and returns files matching any
// include pattern, in walk order.
func resolveSourceFiles(source SourceConfig) ([]string, error) {
	globs := make([]glob.Glob, 0, len(source.Include))
	for _, pattern := range source.Include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("source %s: compile include pattern %q: %w", source.Name, pattern, err)
		}
		globs = append(globs, g)
	}

	info, err := os.Stat(source.Root)
	if err != nil {
		return nil, fmt.Errorf("stat source root %s: %w", source.Root, err)
	}
	if !info.IsDir() {
		return []string{source.Root}, nil
	}

	files := make([]string, 0)
	err = filepath.WalkDir(source.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(source.Root, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)
		for _, g := range globs {
			if g.Match(rel) || g.Match(filepath.Base(rel)) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk source %s: %w", source.Name, err)
	}
	return files, nil
}

func collectFile(cfg *BuildConfig, source SourceConfig, path string, stats *collectionStats) ([]Example, error) {
	if source.Format == FormatMarkdown {
		return collectMarkdown(cfg, path)
	}
	return collectJSONL(cfg, source, path, stats)
}

// collectMarkdown mines question/query pairs from Cypher code blocks in a
// markdown document.
func collectMarkdown(cfg *BuildConfig, path string) ([]Example, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read doc %s: %w", path, err)
	}

	examples := make([]Example, 0)
	for _, doc := range docs.ExtractExamples(content) {
		if cfg.Validate && !ValidCypher(doc.Cypher) {
			continue
		}
		text := FormatChatML(doc.Question, doc.Cypher, SchemaFromCypher(doc.Cypher), cfg.Dialect)
		examples = append(examples, NewExample(text))
	}
	return examples, nil
}

func collectJSONL(cfg *BuildConfig, source SourceConfig, path string, stats *collectionStats) ([]Example, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	examples := make([]Example, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var row map[string]any
		if err := json.Unmarshal(line, &row); err != nil {
			stats.invalidLines++
			continue
		}

		example, ok := convertRow(cfg, source, row, stats)
		if ok {
			examples = append(examples, example)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan source file %s: %w", path, err)
	}
	return examples, nil
}

// convertRow maps one source row to a classified ChatML example.
func convertRow(cfg *BuildConfig, source SourceConfig, row map[string]any, stats *collectionStats) (Example, bool) {
	if source.Format == SourceFormatChatML {
		text := stringField(row, "text")
		if text == "" {
			stats.missingFields++
			return Example{}, false
		}
		if cfg.Validate && !ValidCypher(ExtractQuery(text)) {
			stats.invalidCypher++
			return Example{}, false
		}
		return NewExample(text), true
	}

	questionField, cypherField, schemaField := source.fieldNames()
	question := stringField(row, questionField)
	cypher := stringField(row, cypherField)
	schema := stringField(row, schemaField)

	if question == "" || cypher == "" {
		stats.missingFields++
		return Example{}, false
	}
	if cfg.Validate && !ValidCypher(cypher) {
		stats.invalidCypher++
		return Example{}, false
	}
	if schema == "" {
		schema = SchemaFromCypher(cypher)
	} else {
		schema = CanonicalizeSchema(schema)
	}

	return NewExample(FormatChatML(question, cypher, schema, cfg.Dialect)), true
}

// fieldNames resolves the row field names for a source, honoring explicit
// overrides before format defaults.
func (s SourceConfig) fieldNames() (question string, cypher string, schema string) {
	question, cypher, schema = "question", "cypher", "schema"
	if s.Format == FormatCypherBench {
		question, cypher = "nl_question", "gold_cypher"
	}
	if s.QuestionField != "" {
		question = s.QuestionField
	}
	if s.CypherField != "" {
		cypher = s.CypherField
	}
	if s.SchemaField != "" {
		schema = s.SchemaField
	}
	return question, cypher, schema
}

func stringField(row map[string]any, field string) string {
	value, _ := row[field].(string)
	return value
}
