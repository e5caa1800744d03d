package ports

import (
	"context"

	"qramverify/domain/experiment"
)

// SinkPort persists one tabular artifact per (qubitCount, percentage) pair.
// Artifact naming must be derivable deterministically from those two
// parameters so repeated runs overwrite rather than duplicate.
type SinkPort interface {
	Persist(ctx context.Context, table *experiment.ResultTable) error
}

// LedgerPort records run manifests and result tables for replay auditing.
// Implementations may be backed by the filesystem or a database.
type LedgerPort interface {
	StoreManifest(ctx context.Context, manifest *experiment.RunManifest) error
	StoreTable(ctx context.Context, runID string, table *experiment.ResultTable) error
}
