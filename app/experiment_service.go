package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"qramverify/domain/circuit"
	"qramverify/domain/core"
	"qramverify/domain/experiment"
	"qramverify/internal"
	"qramverify/internal/analysis"
	"qramverify/internal/mutation"
	"qramverify/ports"
)

// ExperimentService drives the removal sweep: for each qubit count in the
// configured range it builds one circuit per input basis state, removes a
// fraction of T gates from a copy, samples both circuits, and persists one
// result table per qubit count.
type ExperimentService struct {
	catalog  ports.CatalogPort
	builder  ports.BuilderPort
	executor *StochasticExecutor
	sink     ports.SinkPort
	ledger   ports.LedgerPort // optional
	rng      ports.RNGPort
	logger   *internal.Logger
	workers  int
	version  string
}

// NewExperimentService wires the orchestrator. ledger may be nil when no run
// database is configured; workers below 1 is treated as sequential.
func NewExperimentService(
	catalog ports.CatalogPort,
	builder ports.BuilderPort,
	executor *StochasticExecutor,
	sink ports.SinkPort,
	ledger ports.LedgerPort,
	rng ports.RNGPort,
	logger *internal.Logger,
	workers int,
	version string,
) *ExperimentService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if workers < 1 {
		workers = 1
	}
	return &ExperimentService{
		catalog:  catalog,
		builder:  builder,
		executor: executor,
		sink:     sink,
		ledger:   ledger,
		rng:      rng,
		logger:   logger.Named("experiment"),
		workers:  workers,
		version:  version,
	}
}

// RunResult is the complete output of one sweep run.
type RunResult struct {
	Manifest  *experiment.RunManifest  `json:"manifest"`
	Tables    []*experiment.ResultTable `json:"tables"`
	Summaries []analysis.SweepSummary  `json:"summaries"`
	RuntimeMs int64                    `json:"runtime_ms"`
}

// RunExperiment validates the parameters once, resolves the decomposition
// scenario once, then sweeps qubit counts from MinQubits to MaxQubits
// inclusive. A simulation failure for any basis state aborts that qubit
// count's iteration before anything is persisted for it; a partial table
// would be misleading.
func (s *ExperimentService) RunExperiment(ctx context.Context, params experiment.SweepParams) (*RunResult, error) {
	startTime := time.Now()

	if err := params.Validate(); err != nil {
		return nil, err
	}
	scenario, err := s.catalog.Resolve(params.ScenarioID)
	if err != nil {
		return nil, err
	}

	runID := core.RunID(core.NewID())
	manifest := experiment.NewRunManifest(runID, params, s.version)
	if s.ledger != nil {
		if err := s.ledger.StoreManifest(ctx, manifest); err != nil {
			return nil, err
		}
	}

	s.logger.Info("run %s: scenario %s, qubits %d..%d, removal %v, repetitions %d",
		runID, params.ScenarioID, params.MinQubits, params.MaxQubits,
		params.Percentage, params.Repetitions)

	result := &RunResult{Manifest: manifest}
	for n := params.MinQubits; n <= params.MaxQubits; n++ {
		table, err := s.runIteration(ctx, runID, scenario, params, n)
		if err != nil {
			return nil, fmt.Errorf("qubit count %d: %w", n, err)
		}

		divergences, summary := analysis.Summarize(table)
		s.logger.Info("n=%d: %d basis states, mean TV %.4f, max TV %.4f, %d distinguishable",
			n, len(divergences), summary.MeanTV, summary.MaxTV, summary.Distinguishable)

		if err := s.sink.Persist(ctx, table); err != nil {
			return nil, err
		}
		if s.ledger != nil {
			if err := s.ledger.StoreTable(ctx, runID.String(), table); err != nil {
				return nil, err
			}
		}
		result.Tables = append(result.Tables, table)
		result.Summaries = append(result.Summaries, summary)
	}

	manifest.RuntimeMs = time.Since(startTime).Milliseconds()
	result.RuntimeMs = manifest.RuntimeMs
	if s.ledger != nil {
		if err := s.ledger.StoreManifest(ctx, manifest); err != nil {
			return nil, err
		}
	}

	s.logger.Info("run %s finished in %dms", runID, result.RuntimeMs)
	return result, nil
}

// runIteration compares original and modified circuits for every basis state
// of one qubit count. Units run concurrently up to the worker limit; records
// land in ascending basis order regardless of completion order.
func (s *ExperimentService) runIteration(ctx context.Context, runID core.RunID, scenario circuit.DecompScenario, params experiment.SweepParams, qubitCount int) (*experiment.ResultTable, error) {
	units := PlanIteration(qubitCount)
	records := make([]experiment.ResultRecord, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, unit := range units {
		i, unit := i, unit
		g.Go(func() error {
			record, err := s.runUnit(gctx, runID, scenario, params, unit)
			if err != nil {
				return fmt.Errorf("basis state %s: %w", unit.BasisState, err)
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &experiment.ResultTable{
		QubitCount: qubitCount,
		Percentage: params.Percentage,
		Records:    records,
	}, nil
}

// runUnit executes one (qubit count, basis state) comparison. The original
// circuit is sampled before the removal mutation so that InPlace removal
// never contaminates the baseline distribution.
func (s *ExperimentService) runUnit(ctx context.Context, runID core.RunID, scenario circuit.DecompScenario, params experiment.SweepParams, unit WorkUnit) (experiment.ResultRecord, error) {
	original, err := s.builder.Build(unit.QubitCount, scenario, unit.BasisState)
	if err != nil {
		return experiment.ResultRecord{}, err
	}
	originalFingerprint := original.Fingerprint()

	originalDist, err := s.executor.Sample(ctx, original, params.Repetitions)
	if err != nil {
		return experiment.ResultRecord{}, err
	}

	stream, err := s.rng.Stream(ctx, runID.String(), "gate-removal", unit.Key(), params.Seed)
	if err != nil {
		return experiment.ResultRecord{}, err
	}
	modified, plan, err := mutation.Remove(original, circuit.KindT, params.Percentage, params.InPlace, stream)
	if err != nil {
		return experiment.ResultRecord{}, err
	}

	modifiedDist, err := s.executor.Sample(ctx, modified, params.Repetitions)
	if err != nil {
		return experiment.ResultRecord{}, err
	}

	s.logger.Debug("unit %s: removed %d of %d T gates", unit.Key(), plan.Count(), plan.Eligible)

	return experiment.ResultRecord{
		BasisState:          unit.BasisState,
		Original:            originalDist,
		Modified:            modifiedDist,
		OriginalFingerprint: originalFingerprint,
		ModifiedFingerprint: modified.Fingerprint(),
		RemovedGates:        plan.Count(),
	}, nil
}
