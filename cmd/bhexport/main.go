// Command bhexport rebuilds the bill archive from the raw store.
package main

import (
	"fmt"
	"os"

	"github.com/beacon-hill-archive/bhexport/internal/adapters/driven/config/file"
	"github.com/beacon-hill-archive/bhexport/internal/adapters/driven/metrics/prometheus"
	"github.com/beacon-hill-archive/bhexport/internal/adapters/driven/storage/rawdb"
	"github.com/beacon-hill-archive/bhexport/internal/adapters/driven/storage/sqlite"
	"github.com/beacon-hill-archive/bhexport/internal/adapters/driving/cli"
	"github.com/beacon-hill-archive/bhexport/internal/core/services"
)

// version is set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServiceBuilder(buildServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildServices wires the adapters into the services the commands use.
func buildServices(configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	exportService := services.NewExportService(
		rawdb.NewFactory(),
		sqlite.NewArchiveFactory(),
		prometheus.NewFactory(),
	)

	return &cli.Services{
		Exporter:  exportService,
		Inspector: exportService,
		Settings:  services.NewSettingsService(configStore),
	}, nil
}
