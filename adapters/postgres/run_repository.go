package postgres

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"qramverify/domain/experiment"
	"qramverify/ports"
)

// RunRepositoryImpl implements ports.LedgerPort on PostgreSQL: run manifests
// and result tables are stored for replay auditing.
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a PostgreSQL run ledger.
func NewRunRepository(db *sqlx.DB) ports.LedgerPort {
	return &RunRepositoryImpl{db: db}
}

// Connect opens the ledger database and ensures its schema.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS experiment_runs (
			run_id       TEXT PRIMARY KEY,
			scenario_id  TEXT NOT NULL,
			min_qubits   INT NOT NULL,
			max_qubits   INT NOT NULL,
			percentage   DOUBLE PRECISION NOT NULL,
			in_place     BOOLEAN NOT NULL,
			repetitions  INT NOT NULL,
			seed         BIGINT NOT NULL,
			fingerprint  TEXT NOT NULL,
			manifest     JSONB NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS experiment_tables (
			run_id       TEXT NOT NULL REFERENCES experiment_runs(run_id),
			qubit_count  INT NOT NULL,
			percentage   DOUBLE PRECISION NOT NULL,
			records      JSONB NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (run_id, qubit_count, percentage)
		);
	`)
	return err
}

// StoreManifest upserts the run manifest.
func (r *RunRepositoryImpl) StoreManifest(ctx context.Context, manifest *experiment.RunManifest) error {
	payload, err := json.Marshal(manifest)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO experiment_runs (run_id, scenario_id, min_qubits, max_qubits, percentage, in_place, repetitions, seed, fingerprint, manifest)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (run_id) DO UPDATE SET manifest = EXCLUDED.manifest, fingerprint = EXCLUDED.fingerprint
	`, manifest.RunID.String(), manifest.Params.ScenarioID.String(),
		manifest.Params.MinQubits, manifest.Params.MaxQubits,
		manifest.Params.Percentage, manifest.Params.InPlace,
		manifest.Params.Repetitions, manifest.Params.Seed,
		manifest.Fingerprint.String(), payload)
	return err
}

// StoreTable upserts one (qubitCount, percentage) result table. The key makes
// re-runs overwrite rather than duplicate.
func (r *RunRepositoryImpl) StoreTable(ctx context.Context, runID string, table *experiment.ResultTable) error {
	records, err := json.Marshal(table.Records)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO experiment_tables (run_id, qubit_count, percentage, records)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (run_id, qubit_count, percentage) DO UPDATE SET records = EXCLUDED.records, created_at = NOW()
	`, runID, table.QubitCount, table.Percentage, records)
	return err
}
