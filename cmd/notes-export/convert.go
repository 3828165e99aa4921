// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notes-export/internal/export"
	"github.com/pdiddy/notes-export/internal/notedoc"
	"github.com/pdiddy/notes-export/internal/render"
)

var convertCmd = &cobra.Command{
	Use:   "convert <document>",
	Short: "Convert one note document to Markdown on stdout",
	Long: `Convert renders a single note document (YAML or JSON, holding the note
text and its attribute runs) to Markdown and prints it. With --table the
output is escaped for use inside a Markdown table cell.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := exportConfig()

	doc, err := notedoc.Load(args[0])
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	env, err := export.NewEnv(cfg, store, logger)
	if err != nil {
		return err
	}

	table, _ := cmd.Flags().GetBool("table")
	out, err := render.New(env, doc.Note).Format(ctx, table)
	if err != nil {
		return fmt.Errorf("converting %s: %w", doc.Name, err)
	}

	fmt.Fprintln(os.Stdout, out)
	return nil
}

func init() {
	addRenderFlags(convertCmd)
	convertCmd.Flags().Bool("table", false, "escape the output for a table cell")

	rootCmd.AddCommand(convertCmd)
}
