package sink

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"qramverify/domain/core"
	"qramverify/domain/experiment"
)

// FileSink persists result tables under a directory, one artifact per
// (qubitCount, percentage) pair. Implements ports.SinkPort and
// ports.LedgerPort.
type FileSink struct {
	dir       string
	writeCSV  bool
	writeXLSX bool
}

// NewFileSink creates a sink writing into dir, creating it if absent.
func NewFileSink(dir string, writeCSV, writeXLSX bool) *FileSink {
	return &FileSink{dir: dir, writeCSV: writeCSV, writeXLSX: writeXLSX}
}

// FileBase derives the artifact base name from the sweep key. The mapping is
// deterministic, so re-running with identical parameters overwrites the same
// files.
func FileBase(qubitCount int, percentage float64) string {
	return fmt.Sprintf("frequencies_n%d_p%s",
		qubitCount, strconv.FormatFloat(percentage, 'f', -1, 64))
}

// CSVPath returns the CSV artifact path for a sweep key.
func (s *FileSink) CSVPath(qubitCount int, percentage float64) string {
	return filepath.Join(s.dir, FileBase(qubitCount, percentage)+".csv")
}

// XLSXPath returns the XLSX artifact path for a sweep key.
func (s *FileSink) XLSXPath(qubitCount int, percentage float64) string {
	return filepath.Join(s.dir, FileBase(qubitCount, percentage)+".xlsx")
}

// Persist writes the result table: one row per basis state, columns
// {input label, original frequency map, modified frequency map}.
func (s *FileSink) Persist(ctx context.Context, table *experiment.ResultTable) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return core.NewOutputWriteError(s.dir, err)
	}
	if s.writeCSV {
		path := s.CSVPath(table.QubitCount, table.Percentage)
		if err := writeCSV(path, table); err != nil {
			return core.NewOutputWriteError(path, err)
		}
	}
	if s.writeXLSX {
		path := s.XLSXPath(table.QubitCount, table.Percentage)
		if err := writeXLSX(path, table); err != nil {
			return core.NewOutputWriteError(path, err)
		}
	}
	return nil
}

// StoreManifest writes the run manifest as JSON next to the tables.
func (s *FileSink) StoreManifest(ctx context.Context, manifest *experiment.RunManifest) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return core.NewOutputWriteError(s.dir, err)
	}
	path := filepath.Join(s.dir, "run_manifest.json")
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return core.NewOutputWriteError(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return core.NewOutputWriteError(path, err)
	}
	return nil
}

// StoreTable records a table through the ledger interface.
func (s *FileSink) StoreTable(ctx context.Context, runID string, table *experiment.ResultTable) error {
	return s.Persist(ctx, table)
}

func writeCSV(path string, table *experiment.ResultTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"basis_state", "original", "modified"}); err != nil {
		return err
	}
	for _, rec := range table.Records {
		orig, err := marshalFrequencies(rec.Original)
		if err != nil {
			return err
		}
		mod, err := marshalFrequencies(rec.Modified)
		if err != nil {
			return err
		}
		if err := w.Write([]string{rec.BasisState.String(), orig, mod}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// marshalFrequencies serializes a frequency table as a JSON object mapping
// bit-strings to counts. JSON object keys come out sorted, keeping the
// artifact byte-stable across runs with identical statistics.
func marshalFrequencies(f experiment.FrequencyDistribution) (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
