package experiment

import (
	"fmt"

	"qramverify/domain/core"
)

// SweepParams is the full configuration surface of one harness run. It is
// read-only after construction and shared across all units of work.
type SweepParams struct {
	ScenarioID  core.ScenarioID `json:"scenario_id"`
	MinQubits   int             `json:"min_qubits"`
	MaxQubits   int             `json:"max_qubits"`
	Percentage  float64         `json:"percentage"`
	InPlace     bool            `json:"in_place"`
	Repetitions int             `json:"repetitions"`
	Seed        int64           `json:"seed"`
}

// Validate checks the sweep parameters once, before any circuit is built.
func (p SweepParams) Validate() error {
	if p.Percentage < 0.0 || p.Percentage > 1.0 {
		return core.NewInvalidFractionError(p.Percentage)
	}
	if p.MinQubits < 2 {
		return fmt.Errorf("%w: %d", core.ErrInvalidQubits, p.MinQubits)
	}
	if p.MaxQubits < p.MinQubits {
		return fmt.Errorf("%w: max %d below min %d", core.ErrInvalidQubits, p.MaxQubits, p.MinQubits)
	}
	if p.Repetitions <= 0 {
		return fmt.Errorf("%w: %d", core.ErrInvalidRepetition, p.Repetitions)
	}
	return nil
}

// RunManifest is the truth source for replaying a run: every parameter that
// influences the produced artifacts, plus a determinism fingerprint.
type RunManifest struct {
	RunID       core.RunID     `json:"run_id"`
	Params      SweepParams    `json:"params"`
	CodeVersion string         `json:"code_version"`
	Fingerprint core.Hash      `json:"fingerprint"`
	CreatedAt   core.Timestamp `json:"created_at"`
	RuntimeMs   int64          `json:"runtime_ms"`
}

// NewRunManifest creates a manifest for the given parameters.
func NewRunManifest(runID core.RunID, params SweepParams, codeVersion string) *RunManifest {
	data := fmt.Sprintf("scenario:%s|q:%d-%d|pct:%v|inplace:%t|reps:%d|seed:%d|code:%s",
		params.ScenarioID, params.MinQubits, params.MaxQubits, params.Percentage,
		params.InPlace, params.Repetitions, params.Seed, codeVersion)
	return &RunManifest{
		RunID:       runID,
		Params:      params,
		CodeVersion: codeVersion,
		Fingerprint: core.NewHash([]byte(data)),
		CreatedAt:   core.Now(),
	}
}
