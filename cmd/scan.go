package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"goods-receiving/core/config"
	"goods-receiving/core/logger"
	"goods-receiving/feature/extraction"

	"github.com/spf13/cobra"
)

// scanCmd extracts a draft from a document on disk without starting the
// server. Useful for tuning the recognition prompt against a folder of
// problem invoices.
var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Extract a draft from an invoice document",
	Long: `Sends a document to the recognition service and prints the parsed
draft as JSON. No session is opened and nothing is written anywhere.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// Console output, the draft JSON goes to stdout on its own.
		logg, err := logger.New(&logger.Config{Level: "warn", Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}

		extractor := extraction.NewHTTPExtractor(cfg.Extraction, logg)
		draft, err := extractor.ScanInvoice(context.Background(), extraction.Document{
			Data:     data,
			MimeType: mimeTypeFor(args[0]),
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(draft)
	},
}

// mimeTypeFor guesses the document content type from the file extension.
func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

func init() {
	RootCmd.AddCommand(scanCmd)
}
