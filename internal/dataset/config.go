package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source formats.
const (
	FormatStandard     = "standard"    // question / cypher / schema fields
	FormatCypherBench  = "cypherbench" // nl_question / gold_cypher fields
	SourceFormatChatML = "chatml"      // pre-formatted text field
	FormatMarkdown     = "markdown"    // cypher code blocks in markdown docs
)

// Default constraint values mirror the production preprocessing run.
const (
	defaultSeed         = 42
	defaultMatchCeiling = 0.70
	defaultCallCeiling  = 0.05
	defaultCreateMin    = 0.20
	defaultCreateMax    = 0.30
	defaultTotal        = 5000
	defaultDialect      = "cypher"
)

// SourceConfig defines one dataset source to collect from.
type SourceConfig struct {
	Name          string   `yaml:"name" json:"name"`
	Format        string   `yaml:"format" json:"format"`
	Root          string   `yaml:"root" json:"root"`
	Include       []string `yaml:"include" json:"include"`
	QuestionField string   `yaml:"question_field" json:"question_field,omitempty"`
	CypherField   string   `yaml:"cypher_field" json:"cypher_field,omitempty"`
	SchemaField   string   `yaml:"schema_field" json:"schema_field,omitempty"`
}

// BuildConfig controls the dataset build pipeline. Zero-valued constraint
// fields take the production defaults on load: a literal seed of 0 or an
// all-zero create band is not expressible in config.
type BuildConfig struct {
	DatasetVersion string         `yaml:"dataset_version" json:"dataset_version"`
	Dialect        string         `yaml:"dialect" json:"dialect"`
	Validate       bool           `yaml:"validate" json:"validate"`
	NoDeduplicate  bool           `yaml:"no_deduplicate" json:"no_deduplicate"`
	NoRebalance    bool           `yaml:"no_rebalance" json:"no_rebalance"`
	AugmentCreate  bool           `yaml:"augment_create" json:"augment_create"`
	Constraints    Constraints    `yaml:"constraints" json:"constraints"`
	Sources        []SourceConfig `yaml:"sources" json:"sources"`
}

// LoadConfig loads a build config from YAML and validates it.
func LoadConfig(path string) (BuildConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return BuildConfig{}, fmt.Errorf("read config: %w", err)
	}

	var cfg BuildConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return BuildConfig{}, fmt.Errorf("parse config yaml: %w", err)
	}

	cfg.applyDefaults(filepath.Dir(path))
	if err := cfg.validate(); err != nil {
		return BuildConfig{}, err
	}
	return cfg, nil
}

func (cfg *BuildConfig) applyDefaults(configDir string) {
	if cfg.DatasetVersion == "" {
		cfg.DatasetVersion = "v0"
	}
	if cfg.Dialect == "" {
		cfg.Dialect = defaultDialect
	}
	if cfg.Constraints.Seed == 0 {
		cfg.Constraints.Seed = defaultSeed
	}
	if cfg.Constraints.MatchCeiling == 0 {
		cfg.Constraints.MatchCeiling = defaultMatchCeiling
	}
	if cfg.Constraints.CallCeiling == 0 {
		cfg.Constraints.CallCeiling = defaultCallCeiling
	}
	if cfg.Constraints.CreateBand.Min == 0 && cfg.Constraints.CreateBand.Max == 0 {
		cfg.Constraints.CreateBand = BandRange{Min: defaultCreateMin, Max: defaultCreateMax}
	}
	if cfg.Constraints.Total == 0 {
		cfg.Constraints.Total = defaultTotal
	}

	for i := range cfg.Sources {
		if cfg.Sources[i].Format == "" {
			cfg.Sources[i].Format = FormatStandard
		}
		if cfg.Sources[i].Root == "" {
			cfg.Sources[i].Root = "."
		}
		if !filepath.IsAbs(cfg.Sources[i].Root) {
			cfg.Sources[i].Root = filepath.Join(configDir, cfg.Sources[i].Root)
		}
		// Both forms: "**/" does not match files at the root itself.
		if len(cfg.Sources[i].Include) == 0 {
			if cfg.Sources[i].Format == FormatMarkdown {
				cfg.Sources[i].Include = []string{"*.md", "**/*.md", "*.markdown", "**/*.markdown"}
			} else {
				cfg.Sources[i].Include = []string{"*.jsonl", "**/*.jsonl"}
			}
		}
	}
}

func (cfg BuildConfig) validate() error {
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	seen := make(map[string]bool, len(cfg.Sources))
	for _, source := range cfg.Sources {
		if source.Name == "" {
			return fmt.Errorf("source name is required")
		}
		if seen[source.Name] {
			return fmt.Errorf("duplicate source name: %s", source.Name)
		}
		seen[source.Name] = true
		switch source.Format {
		case FormatStandard, FormatCypherBench, SourceFormatChatML, FormatMarkdown:
		default:
			return fmt.Errorf("source %s has unknown format %q", source.Name, source.Format)
		}
	}

	if !cfg.NoRebalance {
		if err := cfg.Constraints.Validate(); err != nil {
			return fmt.Errorf("invalid constraints: %w", err)
		}
	}
	return nil
}
