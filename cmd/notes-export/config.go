// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/notes-export/internal/export"
	"github.com/pdiddy/notes-export/internal/notestore"
	"github.com/pdiddy/notes-export/pkg/types"
)

// Configuration keys, as used in notes-export.yaml. Environment variables
// use the NOTES_EXPORT_ prefix with dots replaced by underscores, e.g.
// NOTES_EXPORT_STORE_PATH.
const (
	keyStorePath      = "store.path"
	keyHTML           = "render.html"
	keyOmitFirstLine  = "render.omit_first_line"
	keyHandwriting    = "render.include_handwriting"
	keyLinkStyle      = "link_style"
	keyAttachmentsDir = "attachments_dir"
	keyOutputDir      = "output_dir"
	keyFormat         = "format"
	keyWorkers        = "workers"
	keyForce          = "force"
	keyLogFile        = "log.file"
	keyVerbose        = "log.verbose"
)

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// flagKeys maps command-line flags to the configuration keys they set.
var flagKeys = map[string]string{
	"db":              keyStorePath,
	"html":            keyHTML,
	"omit-first-line": keyOmitFirstLine,
	"handwriting":     keyHandwriting,
	"link-style":      keyLinkStyle,
	"attachments-dir": keyAttachmentsDir,
	"out":             keyOutputDir,
	"format":          keyFormat,
	"workers":         keyWorkers,
	"force":           keyForce,
	"log-file":        keyLogFile,
	"verbose":         keyVerbose,
}

// bindFlags binds the flags of the command being run to their keys, so
// a flag given on the command line overrides the environment and the
// config file.
func bindFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := lookupFlag(cmd, name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}

// addRenderFlags registers the flags shared by convert and export.
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().String("db", "", "path to the notes database (NoteStore.sqlite)")
	cmd.Flags().Bool("html", false, "use HTML tags instead of Markdown emphasis and headings")
	cmd.Flags().Bool("omit-first-line", false, "skip the first line of each note (usually its title)")
	cmd.Flags().Bool("handwriting", false, "include recognized handwriting of drawings as a callout")
	cmd.Flags().String("link-style", string(types.LinkMarkdown), "links between notes: markdown or wikilink")
	cmd.Flags().String("attachments-dir", "attachments", "directory that attachment references point into")
}

// exportConfig assembles the configuration from flags, environment and
// config file.
func exportConfig() types.ExportConfig {
	return types.ExportConfig{
		Render: types.RenderConfig{
			HTML:               viper.GetBool(keyHTML),
			OmitFirstLine:      viper.GetBool(keyOmitFirstLine),
			IncludeHandwriting: viper.GetBool(keyHandwriting),
		},
		Store:          types.StoreConfig{Path: viper.GetString(keyStorePath)},
		OutputDir:      viper.GetString(keyOutputDir),
		Format:         types.OutputFormat(viper.GetString(keyFormat)),
		LinkStyle:      types.LinkStyle(viper.GetString(keyLinkStyle)),
		AttachmentsDir: viper.GetString(keyAttachmentsDir),
		Workers:        viper.GetInt(keyWorkers),
		Force:          viper.GetBool(keyForce),
	}
}

// openStore opens the configured database. Without a database path it
// returns a nil store and the converter renders attachments as unknown.
func openStore(ctx context.Context, cfg types.StoreConfig) (export.Store, func(), error) {
	if cfg.Path == "" {
		logger.Debug("no notes database configured")
		return nil, func() {}, nil
	}
	s, err := notestore.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return s, func() { s.Close() }, nil
}
