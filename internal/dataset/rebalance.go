package dataset

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	// roundingSafetyMargin nudges ceiling-correction targets slightly
	// below the exact bound so float rounding cannot push a corrected
	// count back over it.
	roundingSafetyMargin = 0.999

	// maxCeilingRounds caps the check-and-shrink loop. Each shrink lowers
	// the realized total, which lowers the allowed ceiling, so the
	// sequence is monotonically decreasing and converges quickly.
	maxCeilingRounds = 10

	// ratioEpsilon absorbs float error in ratio-times-count arithmetic,
	// e.g. 0.7*200 evaluating to 139.99999999999997.
	ratioEpsilon = 1e-9
)

// Constraints is the target-ratio configuration for one rebalancing
// invocation. Constructed once, read-only thereafter.
type Constraints struct {
	MatchCeiling float64   `yaml:"match_ceiling" json:"match_ceiling"`
	CallCeiling  float64   `yaml:"call_ceiling" json:"call_ceiling"`
	CreateBand   BandRange `yaml:"create_band" json:"create_band"`
	Total        int       `yaml:"total" json:"total"`
	Seed         int64     `yaml:"seed" json:"seed"`
}

// BandRange defines an acceptable [min, max] share range for a category.
type BandRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Validate rejects internally contradictory constraint sets. Supply
// problems are never validation errors; they degrade the output instead.
func (c Constraints) Validate() error {
	if c.MatchCeiling <= 0 || c.MatchCeiling > 1 {
		return fmt.Errorf("match_ceiling must be in (0, 1], got %v", c.MatchCeiling)
	}
	if c.CallCeiling <= 0 || c.CallCeiling > 1 {
		return fmt.Errorf("call_ceiling must be in (0, 1], got %v", c.CallCeiling)
	}
	if c.CreateBand.Min < 0 || c.CreateBand.Min > 1 || c.CreateBand.Max < 0 || c.CreateBand.Max > 1 {
		return fmt.Errorf("create_band bounds must be in [0, 1], got [%v, %v]", c.CreateBand.Min, c.CreateBand.Max)
	}
	if c.CreateBand.Min > c.CreateBand.Max {
		return fmt.Errorf("create_band min %v exceeds max %v", c.CreateBand.Min, c.CreateBand.Max)
	}
	if c.Total <= 0 {
		return fmt.Errorf("total must be positive, got %d", c.Total)
	}
	return nil
}

// Augmenter manufactures additional examples of an undersupplied category
// from examples of an oversupplied one. Implementations may return fewer
// than requested and must not mutate the source slice.
type Augmenter interface {
	Augment(source []Example, requested int) []Example
}

// Pool partitions classified examples into sampling buckets. The explicitly
// constrained categories (MATCH, CALL, CREATE) keep their own buckets;
// every other category is merged into an OTHER bucket. EMPTY examples are
// excluded entirely. The pool is owned by one Rebalance invocation and is
// consumed by sampling without replacement.
type Pool struct {
	buckets map[Category][]Example
}

// NewPool partitions examples into buckets.
func NewPool(examples []Example) *Pool {
	pool := &Pool{buckets: make(map[Category][]Example)}
	for _, example := range examples {
		pool.Add(example)
	}
	return pool
}

// Add places an example in its bucket. EMPTY examples are dropped.
func (p *Pool) Add(example Example) {
	if example.Category == CategoryEmpty {
		return
	}
	bucket := bucketFor(example.Category)
	p.buckets[bucket] = append(p.buckets[bucket], example)
}

// Size reports the supply of one bucket.
func (p *Pool) Size(bucket Category) int {
	return len(p.buckets[bucket])
}

// Bucket returns the examples in one bucket. Callers must not mutate the
// returned slice.
func (p *Pool) Bucket(bucket Category) []Example {
	return p.buckets[bucket]
}

// Sample draws n examples from a bucket without replacement, in an order
// determined by rng.
func (p *Pool) Sample(bucket Category, n int, rng *rand.Rand) []Example {
	supply := p.buckets[bucket]
	if n > len(supply) {
		n = len(supply)
	}
	if n <= 0 {
		return nil
	}
	out := make([]Example, 0, n)
	for _, index := range rng.Perm(len(supply))[:n] {
		out = append(out, supply[index])
	}
	return out
}

func bucketFor(category Category) Category {
	switch category {
	case CategoryMatch, CategoryCall, CategoryCreate:
		return category
	default:
		return CategoryOther
	}
}

// RebalanceResult is the sampled dataset plus its diagnostic report.
type RebalanceResult struct {
	Examples []Example
	Report   RebalanceReport
}

// Rebalance draws a sample of at most constraints.Total examples whose
// command-type proportions satisfy the constraint set as closely as the
// available supply allows: MATCH stays at or below its ceiling of the
// realized total, CALL at or below its ceiling, and CREATE inside its band
// on a best-effort basis, topped up by the augmenter when natural CREATE
// supply falls short of the band minimum. Insufficient supply shrinks the
// output and is surfaced through report warnings, never as an error; the
// only error is a contradictory constraint set.
func Rebalance(examples []Example, constraints Constraints, augmenter Augmenter) (RebalanceResult, error) {
	if err := constraints.Validate(); err != nil {
		return RebalanceResult{}, fmt.Errorf("invalid constraints: %w", err)
	}

	before := Distribute(examples)
	pool := NewPool(examples)
	warnings := make([]string, 0)

	total := constraints.Total
	minCreate := ratioCount(constraints.CreateBand.Min, total)
	maxCreate := ratioCount(constraints.CreateBand.Max, total)

	augmented := 0
	if shortfall := minCreate - pool.Size(CategoryCreate); shortfall > 0 && augmenter != nil {
		synthetic := augmenter.Augment(pool.Bucket(CategoryMatch), shortfall)
		for _, example := range synthetic {
			pool.Add(example)
		}
		augmented = len(synthetic)
		if augmented < shortfall {
			warnings = append(warnings, fmt.Sprintf(
				"augmenter returned %d of %d requested CREATE examples", augmented, shortfall))
		}
	}

	// Initial allocation: ratio targets clipped to supply, CREATE clipped
	// additionally to its band in absolute terms.
	matchCount := min(ratioCount(constraints.MatchCeiling, total), pool.Size(CategoryMatch))
	callCount := min(ratioCount(constraints.CallCeiling, total), pool.Size(CategoryCall))
	createCount := min(maxCreate, pool.Size(CategoryCreate))
	otherCount := min(total-matchCount-callCount-createCount, pool.Size(CategoryOther))
	if otherCount < 0 {
		otherCount = 0
	}

	// The three ratio targets may sum past 1 (e.g. 0.70+0.05+0.30); with
	// ample supply the initial counts then overshoot the target total. Trim
	// the overflow, MATCH first since it carries only a ceiling.
	realized := matchCount + callCount + createCount + otherCount
	if over := realized - total; over > 0 {
		trim := min(over, matchCount)
		matchCount -= trim
		over -= trim
		trim = min(over, callCount)
		callCount -= trim
		over -= trim
		createCount -= min(over, createCount)
		realized = matchCount + callCount + createCount + otherCount
	}

	// Shortfall redistribution: top up OTHER, then MATCH up to its ceiling.
	if realized < total {
		otherCount += min(total-realized, pool.Size(CategoryOther)-otherCount)
		realized = matchCount + callCount + createCount + otherCount
	}
	if realized < total {
		matchRoom := min(pool.Size(CategoryMatch), ratioCount(constraints.MatchCeiling, total)) - matchCount
		if matchRoom > 0 {
			matchCount += min(total-realized, matchRoom)
			realized = matchCount + callCount + createCount + otherCount
		}
	}

	// Ceiling correction: check-and-shrink rounds until every ratio holds.
	// Shrinking one category lowers the realized total and can push another
	// category over its ceiling, so the three checks repeat together.
	// CREATE and CALL shrink straight to the self-consistent limit; MATCH
	// decays geometrically through the safety margin, with freed CREATE
	// slots redistributed to OTHER. This is the last step before sampling.
	correctOnce := func(exact bool) bool {
		realized := matchCount + callCount + createCount + otherCount
		if realized == 0 {
			return false
		}
		changed := false
		if float64(createCount) > constraints.CreateBand.Max*float64(realized)+ratioEpsilon {
			limit := ceilingLimit(constraints.CreateBand.Max, matchCount+callCount+otherCount)
			otherCount += min(createCount-limit, pool.Size(CategoryOther)-otherCount)
			createCount = limit
			realized = matchCount + callCount + createCount + otherCount
			changed = true
		}
		if float64(callCount) > constraints.CallCeiling*float64(realized)+ratioEpsilon {
			callCount = ceilingLimit(constraints.CallCeiling, matchCount+createCount+otherCount)
			realized = matchCount + callCount + createCount + otherCount
			changed = true
		}
		if float64(matchCount) > constraints.MatchCeiling*float64(realized)+ratioEpsilon {
			if exact {
				matchCount = ceilingLimit(constraints.MatchCeiling, callCount+createCount+otherCount)
			} else {
				matchCount = shrinkTarget(constraints.MatchCeiling, realized)
			}
			changed = true
		}
		return changed
	}
	for round := 0; round < maxCeilingRounds; round++ {
		if !correctOnce(false) {
			break
		}
	}
	// Pools with almost nothing outside MATCH decay too slowly to converge
	// within the round cap; settle the remainder exactly. Terminates
	// because every pass strictly decreases a count.
	for correctOnce(true) {
	}
	realized = matchCount + callCount + createCount + otherCount

	if createCount < minCreate {
		warnings = append(warnings, fmt.Sprintf(
			"CREATE count %d below band minimum %d", createCount, minCreate))
	}
	if realized < total {
		warnings = append(warnings, fmt.Sprintf(
			"sampled %d of %d requested examples", realized, total))
	}

	// Single seeded generator for bucket sampling and the final shuffle
	// keeps the whole invocation reproducible.
	rng := rand.New(rand.NewSource(constraints.Seed))
	out := make([]Example, 0, realized)
	out = append(out, pool.Sample(CategoryMatch, matchCount, rng)...)
	out = append(out, pool.Sample(CategoryCall, callCount, rng)...)
	out = append(out, pool.Sample(CategoryCreate, createCount, rng)...)
	out = append(out, pool.Sample(CategoryOther, otherCount, rng)...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	return RebalanceResult{
		Examples: out,
		Report: RebalanceReport{
			Before:    before,
			After:     Distribute(out),
			Augmented: augmented,
			Warnings:  warnings,
		},
	}, nil
}

// ratioCount converts a share of n into a count, guarding against float
// representations just below the exact product.
func ratioCount(ratio float64, n int) int {
	return int(math.Floor(ratio*float64(n) + ratioEpsilon))
}

// shrinkTarget is the corrected count for a category that exceeded its
// ceiling of the realized total.
func shrinkTarget(ceiling float64, realized int) int {
	return int(math.Floor(ceiling * float64(realized) * roundingSafetyMargin))
}

// ceilingLimit is the largest count m that satisfies m <= ceiling*(m+rest),
// where rest is the combined count of the other buckets. A ceiling of 1
// never violates, so the division is safe under the callers' checks.
func ceilingLimit(ceiling float64, rest int) int {
	if ceiling >= 1 {
		return rest
	}
	return int(math.Floor(ceiling*float64(rest)/(1-ceiling) + ratioEpsilon))
}
