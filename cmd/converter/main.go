package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"coordinate-converter/internal/config"
	"coordinate-converter/internal/maps"
	"coordinate-converter/internal/repository"
	"coordinate-converter/internal/service"
	"coordinate-converter/internal/source"
)

var (
	csvPath       string
	apiKey        string
	verbose       bool
	output        bool
	columnNames   string
	columnIndexes string
)

var rootCmd = &cobra.Command{
	Use:          "converter",
	Short:        "Converts and saves geographical coordinates from a CSV file to the database",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&csvPath, "path-to-csv", "p", "", "path to csv file containing geographical coordinates")
	rootCmd.Flags().StringVarP(&apiKey, "google-maps-key", "k", "", "API key for the Google Maps geocoding service")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "activate debug log level")
	rootCmd.Flags().BoolVarP(&output, "output", "o", false, "mirror logging to the terminal")
	rootCmd.Flags().StringVarP(&columnNames, "csv-column-names", "n", "", "comma-separated CSV column names containing the coordinates")
	rootCmd.Flags().StringVarP(&columnIndexes, "csv-column-indexes", "i", "", "comma-separated CSV column indexes containing the coordinates")

	rootCmd.MarkFlagRequired("path-to-csv")
	rootCmd.MarkFlagRequired("google-maps-key")
	rootCmd.MarkFlagsMutuallyExclusive("csv-column-names", "csv-column-indexes")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := config.InitLogger(cfg.LogPath, verbose, output); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info().Msg(">>> starting the coordinate converter")

	log.Info().Msg("checking CSV file")
	if _, err := os.Stat(csvPath); err != nil {
		log.Error().Err(err).Str("path", csvPath).Msg("path to csv not found")
		return fmt.Errorf("path to csv not found: %w", err)
	}

	var selection source.Selection
	if columnNames != "" {
		names, err := source.ParseColumnNames(columnNames)
		if err != nil {
			log.Error().Err(err).Msg("error parsing columns")
			return err
		}
		selection.Names = names
	}
	if columnIndexes != "" {
		indexes, err := source.ParseColumnIndexes(columnIndexes)
		if err != nil {
			log.Error().Err(err).Msg("error parsing column indexes")
			return err
		}
		selection.Indexes = indexes
	}

	records, err := source.ReadCoordinates(csvPath, selection)
	if err != nil {
		log.Error().Err(err).Msg("failed to read coordinates from csv")
		return err
	}
	log.Info().Int("records", len(records)).Msg("coordinates read from csv")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resolver := maps.NewClient(apiKey)

	log.Info().Msg("checking API key")
	if err := resolver.VerifyKey(ctx); err != nil {
		log.Error().Err(err).Msg("API key check failed")
		return fmt.Errorf("api key check failed: %w", err)
	}
	log.Debug().Msg("API key OK")

	// One pool per run, shared by every row and released on all exit paths.
	pool, err := pgxpool.New(ctx, cfg.DBSource())
	if err != nil {
		log.Error().Err(err).Msg("cannot connect to db")
		return fmt.Errorf("connect to db: %w", err)
	}
	defer pool.Close()

	repo := repository.NewRepository(pool)
	if err := repo.CreateTables(ctx); err != nil {
		log.Error().Err(err).Msg("cannot create tables")
		return err
	}

	converter := service.NewConverterService(resolver, repo)
	summary, runErr := converter.Run(ctx, records)

	log.Info().
		Int("attempted", summary.Attempted).
		Int("persisted", summary.Persisted).
		Int("skipped_not_found", summary.SkippedNotFound).
		Int("skipped_empty_address", summary.SkippedEmptyAddress).
		Int("skipped_incomplete", summary.SkippedIncomplete).
		Int("skipped_conflict", summary.SkippedConflict).
		Int("skipped_store_failure", summary.SkippedStoreFailure).
		Bool("aborted", summary.Aborted).
		Msg("batch finished")

	return runErr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
