package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"unit-translator/internal/config"
	"unit-translator/internal/glossary"
	"unit-translator/internal/graph"
	"unit-translator/internal/integrity"
	"unit-translator/internal/pipeline"
	"unit-translator/internal/report"
	"unit-translator/internal/translog"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "unit-translator",
		Short:         "Glossary-driven translator for unit ini/template files",
		Long:          "Translates section names, keys and values of unit configuration files in both directions from a single glossary, and checks the glossary for conflicting entries.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().String("config", "", "TOML config file (default $TRANSLATOR_CONFIG)")
	rootCmd.PersistentFlags().StringSlice("glossary", nil, "Glossary path; repeat to give fallback candidates")

	rootCmd.AddCommand(translateCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(graphSyncCmd())

	return rootCmd
}

func translateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [input-dir] [output-dir]",
		Short: "Translate every ini/template file under input-dir into output-dir",
		Long: `Translates files using the glossary. The output tree mirrors the input tree;
when output-dir is omitted files are overwritten in place.
--direction auto picks reverse for files containing Chinese text.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			inputDir := "."
			if len(args) >= 1 {
				inputDir = args[0]
			}
			outputDir := inputDir
			if len(args) >= 2 {
				outputDir = args[1]
			}

			if cmd.Flags().Changed("direction") {
				cfg.Direction, _ = cmd.Flags().GetString("direction")
			}
			if cmd.Flags().Changed("workers") {
				cfg.WorkerCount, _ = cmd.Flags().GetInt("workers")
			}
			noReport, _ := cmd.Flags().GetBool("no-report")

			return runTranslate(cfg, inputDir, outputDir, !noReport)
		},
	}

	cmd.Flags().String("direction", "forward", "Translation direction: forward, reverse or auto")
	cmd.Flags().Int("workers", 1, "Number of files translated concurrently")
	cmd.Flags().Bool("no-report", false, "Do not export the translation log")

	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [glossary]",
		Short: "Report duplicate sources and duplicate targets in the glossary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.GlossaryPaths = []string{args[0]}
			}
			if cmd.Flags().Changed("strict") {
				cfg.StrictConflicts, _ = cmd.Flags().GetBool("strict")
			}
			outputPath, _ := cmd.Flags().GetString("output")
			quiet, _ := cmd.Flags().GetBool("quiet")
			failOnConflict, _ := cmd.Flags().GetBool("fail-on-conflict")

			return runCheck(cfg, outputPath, quiet, failOnConflict)
		},
	}

	cmd.Flags().Bool("strict", false, "Count section/key homonyms as duplicates")
	cmd.Flags().StringP("output", "o", "", "Export the report to a .json or .yaml file")
	cmd.Flags().BoolP("quiet", "q", false, "Do not print the report")
	cmd.Flags().Bool("fail-on-conflict", false, "Exit non-zero when duplicates are found")

	return cmd
}

func graphSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph-sync [glossary]",
		Short: "Mirror the glossary into Neo4j and list ambiguous targets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.GlossaryPaths = []string{args[0]}
			}
			return runGraphSync(cfg)
		},
	}
}

// loadConfig reads config and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("glossary") {
		cfg.GlossaryPaths, _ = cmd.Flags().GetStringSlice("glossary")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	return cfg, nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

func integrityOptions(cfg *config.Config) integrity.Options {
	return integrity.Options{IgnoreSectionKeyHomonym: !cfg.StrictConflicts}
}

// runTranslate handles the `translate` command.
func runTranslate(cfg *config.Config, inputDir, outputDir string, exportReport bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	mode, err := pipeline.ParseMode(cfg.Direction)
	if err != nil {
		return err
	}

	store := glossary.Load(cfg.GlossaryPaths...)
	log.Info().
		Str("path", store.Path).
		Int("sections", store.Count(glossary.RoleSection)).
		Int("keys", store.Count(glossary.RoleKey)).
		Int("literals", store.Count(glossary.RoleLiteral)).
		Msg("Loaded glossary")

	// The check is advisory: translation proceeds against the glossary as loaded.
	conflicts := integrity.Check(store.Entries, integrityOptions(cfg))
	if conflicts.HasConflicts() {
		log.Warn().
			Int("duplicate_sources", len(conflicts.DuplicateSources)).
			Int("duplicate_targets", len(conflicts.DuplicateTargets)).
			Msg("Glossary has conflicts, run `check` for details")
	}

	runID := uuid.NewString()
	summary, err := pipeline.Run(ctx, pipeline.NewEngine(store.Entries), pipeline.Options{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Mode:      mode,
		Walker:    cfg.WalkerOptions(),
		Workers:   cfg.WorkerCount,
		RunID:     runID,
	})
	if err != nil {
		return err
	}

	report.NewPrinter(os.Stdout, !color.NoColor).Stats(summary.Stats)

	if exportReport {
		exportTranslationLog(cfg, summary.Log)
	}
	if cfg.DatabaseURL != "" {
		saveTranslationLog(ctx, cfg, summary.Log)
	}

	return nil
}

func exportTranslationLog(cfg *config.Config, l *translog.Log) {
	if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
		log.Warn().Err(err).Str("dir", cfg.ReportDir).Msg("Create report directory")
		return
	}
	if err := l.ExportJSON(filepath.Join(cfg.ReportDir, "translation_log.json")); err != nil {
		log.Warn().Err(err).Msg("Failed to export translation log")
	}
	if err := l.ExportYAML(filepath.Join(cfg.ReportDir, "translation_log.yaml")); err != nil {
		log.Warn().Err(err).Msg("Failed to export translation log")
	}
}

// saveTranslationLog persists the log to PostgreSQL; failures are warnings.
func saveTranslationLog(ctx context.Context, cfg *config.Config, l *translog.Log) {
	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("Connect PostgreSQL")
		return
	}
	defer pgPool.Close()

	if err := pgPool.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("Ping PostgreSQL")
		return
	}

	store := translog.NewStore(pgPool)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Warn().Err(err).Msg("Ensure translation log schema")
		return
	}
	if _, err := store.Save(ctx, l, cfg.DBBatchSize); err != nil {
		log.Warn().Err(err).Msg("Failed to save translation log")
	}
}

// runCheck handles the `check` command.
func runCheck(cfg *config.Config, outputPath string, quiet, failOnConflict bool) error {
	path, ok := glossary.Resolve(cfg.GlossaryPaths...)
	if !ok {
		return fmt.Errorf("%w: tried %v", glossary.ErrNotFound, cfg.GlossaryPaths)
	}

	r, err := integrity.CheckFile(path, integrityOptions(cfg))
	if err != nil {
		return err
	}

	if !quiet {
		report.NewPrinter(os.Stdout, !color.NoColor).Conflicts(r)
	}
	if outputPath != "" {
		if err := report.ExportConflicts(r, outputPath); err != nil {
			return err
		}
		log.Info().Str("path", outputPath).Msg("Exported conflict report")
	}

	if failOnConflict && r.HasConflicts() {
		return fmt.Errorf("glossary has %d duplicate sources and %d duplicate targets",
			len(r.DuplicateSources), len(r.DuplicateTargets))
	}
	return nil
}

// runGraphSync handles the `graph-sync` command.
func runGraphSync(cfg *config.Config) error {
	ctx, cancel := setupContext()
	defer cancel()

	store := glossary.Load(cfg.GlossaryPaths...)
	if !store.Loaded() {
		return store.Err
	}

	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return fmt.Errorf("connect Neo4j: %w", err)
	}
	defer driver.Close(ctx)

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")

	g := graph.NewGlossaryGraph(driver)
	if err := g.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure graph schema: %w", err)
	}
	if _, err := g.Sync(ctx, store.Path, store.Entries, cfg.DBBatchSize); err != nil {
		return err
	}

	ambiguous, err := g.AmbiguousTargets(ctx, store.Path)
	if err != nil {
		return err
	}
	for _, a := range ambiguous {
		log.Warn().
			Str("target", a.Target).
			Strs("sources", a.Sources).
			Ints("lines", a.Lines).
			Msg("Ambiguous target")
	}
	log.Info().Int("ambiguous_targets", len(ambiguous)).Msg("Graph sync complete")
	return nil
}
