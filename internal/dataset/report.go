package dataset

// CompareReports compares two build reports and returns per-category count
// and share drift.
func CompareReports(baseline BuildReport, candidate BuildReport) DriftReport {
	baselineTotal := countTotal(baseline.CategoryCounts)
	candidateTotal := countTotal(candidate.CategoryCounts)

	byCategory := make(map[Category]DriftCategoryDelta)
	for _, category := range AllCategories() {
		baseCount := baseline.CategoryCounts[category]
		candCount := candidate.CategoryCounts[category]
		if baseCount == 0 && candCount == 0 {
			continue
		}
		baseShare := share(baseCount, baselineTotal)
		candShare := share(candCount, candidateTotal)
		byCategory[category] = DriftCategoryDelta{
			BaselineCount:  baseCount,
			CandidateCount: candCount,
			DeltaCount:     candCount - baseCount,
			BaselineShare:  baseShare,
			CandidateShare: candShare,
			DeltaShare:     candShare - baseShare,
		}
	}

	return DriftReport{
		BaselineVersion:  baseline.DatasetVersion,
		CandidateVersion: candidate.DatasetVersion,
		BaselineTotal:    baselineTotal,
		CandidateTotal:   candidateTotal,
		DeltaTotal:       candidateTotal - baselineTotal,
		ByCategory:       byCategory,
	}
}

func countTotal(counts map[Category]int) int {
	total := 0
	for _, count := range counts {
		total += count
	}
	return total
}

func share(count int, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}
