package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"qramverify/adapters/postgres"
	"qramverify/adapters/qram"
	"qramverify/adapters/simulator"
	"qramverify/adapters/sink"
	"qramverify/app"
	"qramverify/domain/circuit"
	"qramverify/domain/core"
	"qramverify/domain/experiment"
	"qramverify/internal"
	"qramverify/internal/config"
	"qramverify/internal/rng"
	"qramverify/ports"
)

const codeVersion = "0.2.0"

func main() {
	if err := godotenv.Load(".env"); err != nil {
		_ = godotenv.Load("../.env")
	}

	rootCmd := &cobra.Command{
		Use:   "qramverify",
		Short: "T gate removal sweeps over bucket-brigade addressing circuits",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newScenariosCmd(),
		newVerifyCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		scenarioID  string
		minQubits   int
		maxQubits   int
		percentage  float64
		inPlace     bool
		repetitions int
		seed        int64
		outputDir   string
		writeXLSX   bool
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a removal sweep and persist one frequency table per qubit count",
		Long: `Run the full sweep: for each qubit count and each input basis state, build
the addressing circuit, remove the configured fraction of T gates, sample both
circuits, and write the frequency tables.

Flags override the corresponding environment variables.

Example: qramverify run --scenario 1 --min-qubits 2 --max-qubits 3 --percentage 0.3 --seed 12345`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlag(cmd, "scenario", func() { cfg.Sweep.ScenarioID = scenarioID })
			applyFlag(cmd, "min-qubits", func() { cfg.Sweep.MinQubits = minQubits })
			applyFlag(cmd, "max-qubits", func() { cfg.Sweep.MaxQubits = maxQubits })
			applyFlag(cmd, "percentage", func() { cfg.Sweep.Percentage = percentage })
			applyFlag(cmd, "in-place", func() { cfg.Sweep.InPlace = inPlace })
			applyFlag(cmd, "repetitions", func() { cfg.Sweep.Repetitions = repetitions })
			applyFlag(cmd, "seed", func() { cfg.Sweep.Seed = seed })
			applyFlag(cmd, "output-dir", func() { cfg.Output.Directory = outputDir })
			applyFlag(cmd, "xlsx", func() { cfg.Output.WriteXLSX = writeXLSX })
			applyFlag(cmd, "workers", func() { cfg.Workers.BasisStateWorkers = workers })

			return runSweep(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&scenarioID, "scenario", "1", "Decomposition scenario identifier")
	cmd.Flags().IntVar(&minQubits, "min-qubits", 2, "Smallest address qubit count in the sweep")
	cmd.Flags().IntVar(&maxQubits, "max-qubits", 3, "Largest address qubit count in the sweep")
	cmd.Flags().Float64Var(&percentage, "percentage", 0.2, "Fraction of T gates to remove, in [0,1]")
	cmd.Flags().BoolVar(&inPlace, "in-place", true, "Mutate the built circuit instead of a copy")
	cmd.Flags().IntVar(&repetitions, "repetitions", 10000, "Executions per circuit per basis state")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Base seed for deterministic gate removal")
	cmd.Flags().StringVar(&outputDir, "output-dir", "results", "Directory for frequency table artifacts")
	cmd.Flags().BoolVar(&writeXLSX, "xlsx", false, "Also write XLSX workbooks with divergence summaries")
	cmd.Flags().IntVar(&workers, "workers", 1, "Concurrent basis-state workers per qubit count")

	return cmd
}

func applyFlag(cmd *cobra.Command, name string, apply func()) {
	if cmd.Flags().Changed(name) {
		apply()
	}
}

func runSweep(cmd *cobra.Command, cfg *config.Config) error {
	logger := internal.NewDefaultLogger()

	var ledger ports.LedgerPort
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("run ledger: %w", err)
		}
		defer db.Close()
		ledger = postgres.NewRunRepository(db)
	}

	rngPort := rng.NewAdapter()
	engine := simulator.NewEngine(nil)
	fileSink := sink.NewFileSink(cfg.Output.Directory, cfg.Output.WriteCSV, cfg.Output.WriteXLSX)

	service := app.NewExperimentService(
		qram.NewCatalog(),
		qram.NewFactory(),
		app.NewStochasticExecutor(engine),
		fileSink,
		ledger,
		rngPort,
		logger,
		cfg.Workers.BasisStateWorkers,
		codeVersion,
	)

	params := experiment.SweepParams{
		ScenarioID:  core.ScenarioID(cfg.Sweep.ScenarioID),
		MinQubits:   cfg.Sweep.MinQubits,
		MaxQubits:   cfg.Sweep.MaxQubits,
		Percentage:  cfg.Sweep.Percentage,
		InPlace:     cfg.Sweep.InPlace,
		Repetitions: cfg.Sweep.Repetitions,
		Seed:        cfg.Sweep.Seed,
	}

	result, err := service.RunExperiment(cmd.Context(), params)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s completed in %dms\n", result.Manifest.RunID, result.RuntimeMs)
	for _, summary := range result.Summaries {
		fmt.Printf("  n=%d p=%v: %d basis states, mean TV %.4f, max TV %.4f, %d distinguishable\n",
			summary.QubitCount, summary.Percentage, summary.BasisStates,
			summary.MeanTV, summary.MaxTV, summary.Distinguishable)
	}
	fmt.Printf("Artifacts written to %s\n", cfg.Output.Directory)
	return nil
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the supported decomposition scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := qram.NewCatalog()
			type entry struct {
				ID       core.ScenarioID        `json:"id"`
				Scenario circuit.DecompScenario `json:"scenario"`
			}
			var entries []entry
			for _, id := range catalog.ScenarioIDs() {
				s, err := catalog.Resolve(id)
				if err != nil {
					return err
				}
				entries = append(entries, entry{ID: id, Scenario: s})
			}
			out, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func newVerifyCmd() *cobra.Command {
	var (
		scenarioID string
		minQubits  int
		maxQubits  int
		diagram    bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check built circuits against closed-form T and qubit counts",
		Long: `Build the addressing circuit for each qubit count in the range and compare
its gate census against the closed-form expectations for the scenario.
Useful as a fast structural sanity check before a long sweep.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := qram.NewCatalog()
			scenario, err := catalog.Resolve(core.ScenarioID(scenarioID))
			if err != nil {
				return err
			}
			factory := qram.NewFactory()

			failed := false
			for n := minQubits; n <= maxQubits; n++ {
				zero := circuit.EnumerateBasisStates(n)[0]
				c, err := factory.Build(n, scenario, zero)
				if err != nil {
					return err
				}

				tOK := qram.VerifyTCount(c, n, scenario)
				qOK := qram.VerifyQubitCount(c, n, scenario)
				fmt.Printf("n=%d: qubits %d (want %d), T gates %d (want %d), T depth %d, CX %d, CCX %d\n",
					n, c.NumQubits, qram.ExpectedQubitCount(n, scenario),
					qram.CountT(c), qram.ExpectedTCount(n, scenario),
					qram.TDepth(c), qram.CountCNOT(c), qram.CountToffoli(c))
				if !tOK || !qOK {
					failed = true
					fmt.Printf("n=%d: census mismatch\n", n)
				}
				if diagram {
					fmt.Println(c.Diagram())
				}
			}
			if failed {
				return fmt.Errorf("structural verification failed")
			}
			fmt.Println("All counts match.")
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioID, "scenario", "1", "Decomposition scenario identifier")
	cmd.Flags().IntVar(&minQubits, "min-qubits", 2, "Smallest address qubit count")
	cmd.Flags().IntVar(&maxQubits, "max-qubits", 3, "Largest address qubit count")
	cmd.Flags().BoolVar(&diagram, "diagram", false, "Print an ASCII diagram of each circuit")

	return cmd
}
