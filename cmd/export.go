package cmd

import (
	"context"
	"fmt"
	"os"

	"listsync/core/config"
	"listsync/core/database"
	"listsync/core/logger"
	"listsync/core/storage"
	"listsync/feature/images"
	"listsync/feature/lists"
	"listsync/feature/transfer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportOutput       string
	exportNoImages     bool
	exportNoCrossedOut bool
	exportNoDates      bool
	exportNoArchived   bool
)

// exportCmd writes local lists out as a JSON document.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all lists as a JSON document",
	Long: `Export all lists as a JSON document suitable for backup or transfer
to another application.

Examples:
  # Export everything to a file
  export --output lists.json

  # Export without embedded image payloads
  export --no-images --output lists.json`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportNoImages, "no-images", false, "Skip embedded image payloads")
	exportCmd.Flags().BoolVar(&exportNoCrossedOut, "no-crossed-out", false, "Skip crossed-out items")
	exportCmd.Flags().BoolVar(&exportNoDates, "no-dates", false, "Skip timestamps")
	exportCmd.Flags().BoolVar(&exportNoArchived, "no-archived", false, "Skip archived lists")

	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	service, l, err := newTransferService()
	if err != nil {
		return err
	}

	opts := transfer.DefaultOptions()
	opts.IncludeImages = !exportNoImages
	opts.IncludeCrossedOut = !exportNoCrossedOut
	opts.IncludeDates = !exportNoDates
	opts.IncludeArchived = !exportNoArchived

	payload, err := service.ExportPayload(ctx, opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if exportOutput == "" {
		fmt.Println(string(payload))
		return nil
	}
	if err := os.WriteFile(exportOutput, payload, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	l.Info("Export written", zap.String("file", exportOutput), zap.Int("bytes", len(payload)))
	return nil
}

// newTransferService builds a transfer service from configuration: record
// store always, blob storage when reachable.
func newTransferService() (*transfer.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store, err := lists.NewRepository(db, l)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize record store: %w", err)
	}

	var blobs transfer.ImageStore
	if client, err := storage.NewClient(cfg.Storage); err != nil {
		l.Warn("Optional blob storage connection failed", zap.Error(err))
	} else {
		blobs = images.NewStore(client, cfg.Storage.Bucket, l)
	}

	return transfer.NewService(store, blobs, l), l, nil
}
