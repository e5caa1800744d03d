package analysis

import (
	"github.com/montanaflynn/stats"

	"qramverify/domain/experiment"
)

// SweepSummary aggregates per-basis-state divergences for one
// (qubitCount, percentage) result table.
type SweepSummary struct {
	QubitCount      int     `json:"qubit_count"`
	Percentage      float64 `json:"percentage"`
	BasisStates     int     `json:"basis_states"`
	MeanTV          float64 `json:"mean_tv"`
	MaxTV           float64 `json:"max_tv"`
	StdDevTV        float64 `json:"stddev_tv"`
	Distinguishable int     `json:"distinguishable"`
}

// Summarize computes per-record divergences and their sweep-level summary.
// The returned divergence slice is index-aligned with table.Records.
func Summarize(table *experiment.ResultTable) ([]Divergence, SweepSummary) {
	divergences := make([]Divergence, len(table.Records))
	tvs := make([]float64, len(table.Records))
	distinguishable := 0
	for i, rec := range table.Records {
		divergences[i] = Compare(rec.Original, rec.Modified)
		tvs[i] = divergences[i].TotalVariation
		if divergences[i].Distinguishable {
			distinguishable++
		}
	}

	summary := SweepSummary{
		QubitCount:      table.QubitCount,
		Percentage:      table.Percentage,
		BasisStates:     len(table.Records),
		Distinguishable: distinguishable,
	}
	if len(tvs) > 0 {
		// montanaflynn/stats only errors on empty input here.
		summary.MeanTV, _ = stats.Mean(tvs)
		summary.MaxTV, _ = stats.Max(tvs)
		summary.StdDevTV, _ = stats.StandardDeviation(tvs)
	}
	return divergences, summary
}
