package testkit

import (
	"context"
	"math/rand"
	"sync"

	"qramverify/adapters/qram"
	"qramverify/adapters/simulator"
	"qramverify/app"
	"qramverify/domain/experiment"
	"qramverify/internal"
	"qramverify/internal/rng"
	"qramverify/ports"
)

// TestKit wires an in-memory harness: real catalog, builder and simulator,
// with sink and ledger replaced by recording fakes.
type TestKit struct {
	sink   *InMemorySink
	ledger *InMemoryLedger
}

// NewTestKit creates a fresh kit. Nothing is shared between kits.
func NewTestKit() *TestKit {
	return &TestKit{
		sink:   NewInMemorySink(),
		ledger: NewInMemoryLedger(),
	}
}

// Sink returns the recording sink.
func (t *TestKit) Sink() *InMemorySink { return t.sink }

// Ledger returns the recording ledger.
func (t *TestKit) Ledger() *InMemoryLedger { return t.ledger }

// RNGAdapter returns a deterministic RNG port.
func (t *TestKit) RNGAdapter() ports.RNGPort {
	return rng.NewAdapter()
}

// ExperimentService builds a fully wired orchestrator over the in-memory
// sink and ledger, with the given worker count. The sampling engine is seeded
// with a fixed source so runs reproduce.
func (t *TestKit) ExperimentService(workers int) *app.ExperimentService {
	engine := simulator.NewEngine(rand.New(rand.NewSource(42)))
	return app.NewExperimentService(
		qram.NewCatalog(),
		qram.NewFactory(),
		app.NewStochasticExecutor(engine),
		t.sink,
		t.ledger,
		t.RNGAdapter(),
		internal.NewLogger(internal.LogLevelError),
		workers,
		"test",
	)
}

// InMemorySink implements ports.SinkPort by recording persisted tables.
type InMemorySink struct {
	mu     sync.Mutex
	tables []*experiment.ResultTable
}

func NewInMemorySink() *InMemorySink {
	return &InMemorySink{}
}

func (s *InMemorySink) Persist(ctx context.Context, table *experiment.ResultTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = append(s.tables, table)
	return nil
}

// Tables returns the persisted tables in persistence order.
func (s *InMemorySink) Tables() []*experiment.ResultTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*experiment.ResultTable, len(s.tables))
	copy(out, s.tables)
	return out
}

// InMemoryLedger implements ports.LedgerPort with map storage.
type InMemoryLedger struct {
	mu        sync.Mutex
	manifests map[string]*experiment.RunManifest
	tables    map[string][]*experiment.ResultTable
}

func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		manifests: make(map[string]*experiment.RunManifest),
		tables:    make(map[string][]*experiment.ResultTable),
	}
}

func (l *InMemoryLedger) StoreManifest(ctx context.Context, manifest *experiment.RunManifest) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.manifests[manifest.RunID.String()] = manifest
	return nil
}

func (l *InMemoryLedger) StoreTable(ctx context.Context, runID string, table *experiment.ResultTable) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tables[runID] = append(l.tables[runID], table)
	return nil
}

// Manifest returns the stored manifest for a run, or nil.
func (l *InMemoryLedger) Manifest(runID string) *experiment.RunManifest {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.manifests[runID]
}

// TablesFor returns the stored tables for a run.
func (l *InMemoryLedger) TablesFor(runID string) []*experiment.ResultTable {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tables[runID]
}
