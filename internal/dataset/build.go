package dataset

// Build runs collection, deduplication, and rebalancing, and assembles the
// build report.
func Build(cfg BuildConfig) (BuildOutput, error) {
	examples, stats, err := Collect(&cfg)
	if err != nil {
		return BuildOutput{}, err
	}

	duplicates := 0
	if !cfg.NoDeduplicate {
		examples, duplicates = DropDuplicateQuestions(examples)
	}

	var rebalanceReport *RebalanceReport
	if !cfg.NoRebalance {
		var augmenter Augmenter
		if cfg.AugmentCreate {
			augmenter = CreateAugmenter{Dialect: cfg.Dialect}
		}
		result, err := Rebalance(examples, cfg.Constraints, augmenter)
		if err != nil {
			return BuildOutput{}, err
		}
		examples = result.Examples
		rebalanceReport = &result.Report
	}

	report := BuildReport{
		DatasetVersion:    cfg.DatasetVersion,
		Dialect:           cfg.Dialect,
		SourcesConsidered: len(cfg.Sources),
		FilesScanned:      stats.filesScanned,
		ExamplesLoaded:    stats.examplesLoaded,
		ExamplesKept:      len(examples),
		MissingFields:     stats.missingFields,
		InvalidCypher:     stats.invalidCypher,
		InvalidLines:      stats.invalidLines,
		Duplicates:        duplicates,
		CategoryCounts:    Distribute(examples).Counts,
		Rebalance:         rebalanceReport,
	}

	return BuildOutput{Examples: examples, Report: report}, nil
}
