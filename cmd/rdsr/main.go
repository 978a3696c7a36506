package main

import (
	"fmt"
	"os"

	"github.com/clinphys/rdsr-cli/internal/adapters/driven/config/file"
	"github.com/clinphys/rdsr-cli/internal/adapters/driven/dicomdir"
	"github.com/clinphys/rdsr-cli/internal/adapters/driven/export"
	"github.com/clinphys/rdsr-cli/internal/adapters/driving/cli"
	"github.com/clinphys/rdsr-cli/internal/core/services"
)

// version is injected at build time:
//
//	go build -ldflags "-X main.version=v0.2.0" ./cmd/rdsr
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli.SetVersion(version)
	cli.SetBootstrap(wire)
	return cli.Execute()
}

// wire builds the driven adapters and the pipeline after flag
// parsing, so --config takes effect before anything reads settings.
func wire(configDir string) error {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	source := dicomdir.New(configStore.GetStringSlice("scan.extensions"))
	pipeline := services.NewPipeline(source)

	delimiter := ','
	if d := configStore.GetString("export.delimiter"); d != "" {
		delimiter = rune(d[0])
	}

	cli.SetPipelineService(pipeline)
	cli.SetExporter(export.NewCSV(delimiter))
	cli.SetConfigStore(configStore)
	return nil
}
