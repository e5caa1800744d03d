package analysis

import (
	"math"
	"testing"

	"qramverify/domain/experiment"
)

// TestCompareIdentical tests that equal tables show zero divergence
func TestCompareIdentical(t *testing.T) {
	freq := experiment.FrequencyDistribution{"00": 600, "11": 400}
	d := Compare(freq, freq)

	if d.TotalVariation != 0 {
		t.Errorf("Expected zero total variation, got %v", d.TotalVariation)
	}
	if d.Distinguishable {
		t.Error("Identical tables must not be distinguishable")
	}
	if d.PValue < 0.99 {
		t.Errorf("Expected p-value near 1 for identical tables, got %v", d.PValue)
	}
}

// TestCompareDisjoint tests maximal divergence on non-overlapping supports
func TestCompareDisjoint(t *testing.T) {
	original := experiment.FrequencyDistribution{"001": 1000}
	modified := experiment.FrequencyDistribution{"000": 1000}
	d := Compare(original, modified)

	if math.Abs(d.TotalVariation-1.0) > 1e-12 {
		t.Errorf("Expected total variation 1, got %v", d.TotalVariation)
	}
	if !d.Distinguishable {
		t.Error("Disjoint supports must be distinguishable")
	}
	if d.DF != 1 {
		t.Errorf("Expected one degree of freedom for two outcomes, got %d", d.DF)
	}
}

// TestCompareSamplingNoise tests that small fluctuations are not flagged
func TestCompareSamplingNoise(t *testing.T) {
	original := experiment.FrequencyDistribution{"0": 5020, "1": 4980}
	modified := experiment.FrequencyDistribution{"0": 4985, "1": 5015}
	d := Compare(original, modified)

	if d.Distinguishable {
		t.Errorf("Sampling-noise difference flagged as distinguishable (p=%v)", d.PValue)
	}
	if d.TotalVariation > 0.01 {
		t.Errorf("Expected tiny total variation, got %v", d.TotalVariation)
	}
}

// TestCompareSingleSharedOutcome tests the degenerate one-column case
func TestCompareSingleSharedOutcome(t *testing.T) {
	a := experiment.FrequencyDistribution{"101": 1000}
	b := experiment.FrequencyDistribution{"101": 2000}
	d := Compare(a, b)

	if d.TotalVariation != 0 || d.Distinguishable {
		t.Errorf("Single shared outcome should be indistinguishable, got %+v", d)
	}
}

// TestCompareEmptyInput tests empty tables
func TestCompareEmptyInput(t *testing.T) {
	d := Compare(experiment.FrequencyDistribution{}, experiment.FrequencyDistribution{"0": 10})
	if d.Distinguishable || d.TotalVariation != 0 {
		t.Errorf("Empty input should yield the zero divergence, got %+v", d)
	}
}

// TestSummarize tests sweep-level aggregation
func TestSummarize(t *testing.T) {
	table := &experiment.ResultTable{
		QubitCount: 2,
		Percentage: 0.5,
		Records: []experiment.ResultRecord{
			{
				BasisState: "00",
				Original:   experiment.FrequencyDistribution{"001": 1000},
				Modified:   experiment.FrequencyDistribution{"001": 1000},
			},
			{
				BasisState: "01",
				Original:   experiment.FrequencyDistribution{"011": 1000},
				Modified:   experiment.FrequencyDistribution{"010": 1000},
			},
		},
	}

	divergences, summary := Summarize(table)
	if len(divergences) != 2 {
		t.Fatalf("Expected 2 divergences, got %d", len(divergences))
	}
	if summary.QubitCount != 2 || summary.Percentage != 0.5 || summary.BasisStates != 2 {
		t.Errorf("Summary key fields wrong: %+v", summary)
	}
	if summary.Distinguishable != 1 {
		t.Errorf("Expected 1 distinguishable state, got %d", summary.Distinguishable)
	}
	if math.Abs(summary.MeanTV-0.5) > 1e-12 {
		t.Errorf("Expected mean TV 0.5, got %v", summary.MeanTV)
	}
	if math.Abs(summary.MaxTV-1.0) > 1e-12 {
		t.Errorf("Expected max TV 1.0, got %v", summary.MaxTV)
	}
}
