package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"qramverify/domain/experiment"
)

// DefaultAlpha is the significance threshold for calling two empirical
// distributions distinguishable.
const DefaultAlpha = 0.01

// Divergence quantifies how far two empirical frequency tables are apart.
type Divergence struct {
	// TotalVariation is half the L1 distance between the two empirical
	// probability vectors, in [0,1].
	TotalVariation float64 `json:"total_variation"`

	// ChiSquare and PValue come from the chi-square homogeneity test over
	// the union of observed outcomes.
	ChiSquare float64 `json:"chi_square"`
	DF        int     `json:"df"`
	PValue    float64 `json:"p_value"`

	// Distinguishable is true when the homogeneity test rejects at
	// DefaultAlpha: the gate removal measurably altered the statistics.
	Distinguishable bool `json:"distinguishable"`
}

// Compare measures the divergence between the original and modified
// circuits' frequency tables.
func Compare(original, modified experiment.FrequencyDistribution) Divergence {
	outcomes := unionOutcomes(original, modified)
	nOrig := float64(original.Total())
	nMod := float64(modified.Total())

	d := Divergence{PValue: 1.0}
	if nOrig == 0 || nMod == 0 || len(outcomes) == 0 {
		return d
	}

	// Total variation distance over the union support.
	tv := 0.0
	for _, k := range outcomes {
		tv += math.Abs(float64(original[k])/nOrig - float64(modified[k])/nMod)
	}
	d.TotalVariation = tv / 2

	// Chi-square homogeneity: 2×K contingency table of the two samples.
	if len(outcomes) < 2 {
		// Both samples concentrated on a single shared outcome.
		return d
	}
	chi := 0.0
	total := nOrig + nMod
	for _, k := range outcomes {
		colTotal := float64(original[k] + modified[k])
		for _, row := range []struct {
			observed float64
			rowTotal float64
		}{
			{float64(original[k]), nOrig},
			{float64(modified[k]), nMod},
		} {
			expected := row.rowTotal * colTotal / total
			if expected > 0 {
				diff := row.observed - expected
				chi += diff * diff / expected
			}
		}
	}
	d.ChiSquare = chi
	d.DF = len(outcomes) - 1

	dist := distuv.ChiSquared{K: float64(d.DF)}
	d.PValue = 1 - dist.CDF(chi)
	d.Distinguishable = d.PValue < DefaultAlpha
	return d
}

func unionOutcomes(a, b experiment.FrequencyDistribution) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	outcomes := make([]string, 0, len(seen))
	for k := range seen {
		outcomes = append(outcomes, k)
	}
	sort.Strings(outcomes)
	return outcomes
}
