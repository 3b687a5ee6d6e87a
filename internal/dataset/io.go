package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// maxLineBytes bounds a single JSONL row. Schemas embedded in ChatML texts
// can run long.
const maxLineBytes = 4 * 1024 * 1024

// ReadExamples reads a JSONL dataset of {"text": ...} rows and classifies
// each example. Rows that are not valid JSON are skipped and counted.
func ReadExamples(path string) ([]Example, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	examples := make([]Example, 0)
	invalid := 0
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var row struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(line, &row); err != nil || row.Text == "" {
			invalid++
			continue
		}
		examples = append(examples, NewExample(row.Text))
	}
	if err := scanner.Err(); err != nil {
		return nil, invalid, fmt.Errorf("scan dataset %s: %w", path, err)
	}
	return examples, invalid, nil
}

// WriteExamples writes examples as JSONL, one {"text": ...} row per line.
func WriteExamples(path string, examples []Example) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, example := range examples {
		if err := encoder.Encode(example); err != nil {
			return fmt.Errorf("encode dataset row: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}
	return nil
}

// WriteJSON writes an indented JSON document.
func WriteJSON(path string, value any) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}
	content, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	content = append(content, '\n')
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// ReadBuildReport reads a build report JSON document.
func ReadBuildReport(path string) (BuildReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return BuildReport{}, fmt.Errorf("read build report: %w", err)
	}
	var report BuildReport
	if err := json.Unmarshal(content, &report); err != nil {
		return BuildReport{}, fmt.Errorf("parse build report json: %w", err)
	}
	return report, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
