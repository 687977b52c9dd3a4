package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"listsync/feature/transfer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importStrategy   string
	importDryRun     bool
	importNoValidate bool
	importNoImages   bool
	importYesConfirm bool
)

// importCmd reconciles a JSON document into the local store.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import lists from a JSON document",
	Long: `Import lists from a JSON document. The whole document is validated
before anything is written; a single invalid entity rejects the import.

Examples:
  # Merge a document into local state (default)
  import lists.json

  # Preview only, no changes
  import lists.json --dry-run

  # Make local state exactly the document's state
  import lists.json --strategy replace --yes

  # Insert everything as new lists
  import lists.json --strategy append`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importStrategy, "strategy", "merge", "Merge strategy (merge, replace, append)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Preview the import without applying it")
	importCmd.Flags().BoolVar(&importNoValidate, "no-validate", false, "Skip document validation")
	importCmd.Flags().BoolVar(&importNoImages, "no-images", false, "Skip embedded image payloads")
	importCmd.Flags().BoolVar(&importYesConfirm, "yes", false, "Auto-confirm destructive strategies (non-interactive)")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	payload, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	service, l, err := newTransferService()
	if err != nil {
		return err
	}

	opts := transfer.DefaultOptions()
	opts.Strategy, err = transfer.ParseStrategy(importStrategy)
	if err != nil {
		return err
	}
	opts.ValidateData = !importNoValidate
	opts.IncludeImages = !importNoImages

	preview, err := service.PreviewPayload(ctx, payload, opts)
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}
	printPreview(l, preview)
	if !preview.IsValid {
		return fmt.Errorf("document is invalid: %s", preview.Error)
	}

	if importDryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	// Replace deletes local data the document does not contain; get an
	// explicit confirmation first.
	if opts.Strategy == transfer.StrategyReplace && (preview.ListsToDelete > 0 || preview.ItemsToDelete > 0) {
		if !confirmImport() {
			l.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
	}

	result, err := service.ImportPayload(ctx, payload, opts, func(p transfer.Progress) {
		l.Debug("Import progress",
			zap.Int("percent", p.Percentage()),
			zap.String("operation", p.CurrentOperation),
		)
	})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	l.Info("Import applied",
		zap.Int("lists_created", result.ListsCreated),
		zap.Int("lists_updated", result.ListsUpdated),
		zap.Int("lists_deleted", result.ListsDeleted),
		zap.Int("items_created", result.ItemsCreated),
		zap.Int("items_updated", result.ItemsUpdated),
		zap.Int("items_deleted", result.ItemsDeleted),
		zap.Int("conflicts", len(result.Conflicts)),
	)
	return nil
}

func printPreview(l *zap.Logger, p *transfer.Preview) {
	l.Info("Import preview",
		zap.Bool("valid", p.IsValid),
		zap.Int("lists_to_create", p.ListsToCreate),
		zap.Int("lists_to_update", p.ListsToUpdate),
		zap.Int("lists_to_delete", p.ListsToDelete),
		zap.Int("items_to_create", p.ItemsToCreate),
		zap.Int("items_to_update", p.ItemsToUpdate),
		zap.Int("items_to_delete", p.ItemsToDelete),
	)

	// Show sample of conflicts (max 5 for logger)
	maxShow := 5
	if len(p.Conflicts) < maxShow {
		maxShow = len(p.Conflicts)
	}
	for i := 0; i < maxShow; i++ {
		c := p.Conflicts[i]
		l.Info("Conflict",
			zap.String("type", string(c.Type)),
			zap.String("entity", c.EntityName),
			zap.String("message", c.Message),
		)
	}
	if len(p.Conflicts) > maxShow {
		l.Info("Additional conflicts not shown", zap.Int("count", len(p.Conflicts)-maxShow))
	}
}

// confirmImport prompts the user for confirmation or uses --yes flag.
func confirmImport() bool {
	if importYesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Replace will delete local data. Type 'yes' to confirm: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
