package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/beacon-hill-archive/bhexport/internal/adapters/driving/watch"
	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
)

var (
	exportDriver      string
	exportSource      string
	exportOut         string
	exportWatch       bool
	exportInterval    time.Duration
	exportReport      string
	exportMetricsFile string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Rebuild the archive from the raw store",
	Long: `Reads every raw table once, normalises bills, timeline actions, hearings
and documents, and writes a fresh archive with its full-text search index.

Flags override the stored settings for this run only.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDriver, "driver", "", "raw store driver: duckdb, postgres or sqlite")
	exportCmd.Flags().StringVarP(&exportSource, "source", "s", "", "raw store file or connection string")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "archive path")
	exportCmd.Flags().BoolVarP(&exportWatch, "watch", "w", false, "rebuild whenever the source file changes")
	exportCmd.Flags().DurationVar(&exportInterval, "interval", watch.DefaultInterval, "minimum time between rebuilds in watch mode")
	exportCmd.Flags().StringVar(&exportReport, "report", "", "write a YAML run report to this file")
	exportCmd.Flags().StringVar(&exportMetricsFile, "metrics-file", "", "write Prometheus textfile metrics to this file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exporter == nil || settingsService == nil {
		return errors.New("export service not configured")
	}

	stored, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings := applyExportFlags(cmd, *stored)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !exportWatch {
		return exportOnce(ctx, cmd, settings)
	}

	if !settings.Source.Driver.IsFile() {
		return fmt.Errorf("--watch needs a file source, not %s", settings.Source.Driver)
	}

	if err := exportOnce(ctx, cmd, settings); err != nil {
		cmd.PrintErrf("Initial export failed: %v\n", err)
	}
	return watch.New(settings.Source.DSN, exportInterval).Run(ctx, func(ctx context.Context) error {
		return exportOnce(ctx, cmd, settings)
	})
}

// applyExportFlags overlays the flags the user set on stored settings.
func applyExportFlags(cmd *cobra.Command, s domain.ExportSettings) domain.ExportSettings {
	flags := cmd.Flags()
	if flags.Changed("driver") {
		s.Source.Driver = domain.SourceDriver(exportDriver)
	}
	if flags.Changed("source") {
		s.Source.DSN = exportSource
	}
	if flags.Changed("out") {
		s.ArchivePath = exportOut
	}
	if flags.Changed("metrics-file") {
		s.MetricsTextfile = exportMetricsFile
	}
	return s
}

func exportOnce(ctx context.Context, cmd *cobra.Command, settings domain.ExportSettings) error {
	stats, err := exporter.Export(ctx, settings)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	printExportSummary(cmd, stats)

	if exportReport != "" {
		if err := writeReport(exportReport, stats); err != nil {
			return err
		}
		cmd.Printf("Report written to %s\n", exportReport)
	}
	return nil
}

func printExportSummary(cmd *cobra.Command, stats *domain.ExportStats) {
	cmd.Println(titleStyle.Render("Archive " + stats.ArchivePath))
	cmd.Println(renderTable(
		[]string{"Table", "Rows"},
		[][]string{
			{"bills", itoa(stats.Bills)},
			{"timeline_actions", itoa(stats.TimelineActions)},
			{"hearing_records", itoa(stats.HearingRecords)},
			{"documents", itoa(stats.Documents.Total())},
			{"search_index", itoa(stats.SearchDocuments)},
		},
	))
	cmd.Println(mutedStyle.Render(fmt.Sprintf(
		"documents: %d linked, %d from index, %d index rows skipped",
		stats.Documents.Primary, stats.Documents.SecondaryAdded, stats.Documents.SecondarySkipped,
	)))
	cmd.Println(mutedStyle.Render(fmt.Sprintf("run %s in %s", stats.RunID, stats.Duration.Round(time.Millisecond))))
}

// writeReport saves stats as YAML.
func writeReport(path string, stats *domain.ExportStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
