// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notes-export/internal/export"
	"github.com/pdiddy/notes-export/internal/notedoc"
)

var exportCmd = &cobra.Command{
	Use:   "export [documents...]",
	Short: "Export note documents to a directory of Markdown or HTML files",
	Long: `Export converts every given note document, and every document found
under the given directories, writing one file per note with YAML
frontmatter (or a standalone HTML page with --format html). Notes that
already have an output file are skipped unless --force is set.

Links between notes of the same export point at each other's files;
links to other notes are named after the linked note's title.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := exportConfig()

	files, err := notedoc.Find(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no documents found in %v", args)
	}

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	exporter, err := export.New(cfg, store, logger)
	if err != nil {
		return err
	}

	result := exporter.ExportBatch(ctx, files, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d note(s) failed to export", result.Failed)
	}
	return nil
}

func init() {
	addRenderFlags(exportCmd)
	exportCmd.Flags().StringP("out", "o", "notes", "output directory")
	exportCmd.Flags().String("format", "markdown", "output format: markdown or html")
	exportCmd.Flags().Int("workers", 4, "number of notes converted concurrently")
	exportCmd.Flags().Bool("force", false, "overwrite existing output files")

	rootCmd.AddCommand(exportCmd)
}
