// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notes-export CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/notes-export/internal/logging"
	"github.com/pdiddy/notes-export/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	logger   = zap.NewNop()
	closeLog = func() error { return nil }
)

// rootCmd is the base command for the notes-export CLI.
var rootCmd = &cobra.Command{
	Use:   "notes-export",
	Short: "Convert notes to Markdown",
	Long: `notes-export converts notes, decoded into YAML documents with their
attribute runs, into Markdown or HTML-flavoured Markdown. Attachments,
links between notes, tables and scans are resolved against the notes
database (NoteStore.sqlite) when one is given.

Use convert to render a single document to stdout and export to write a
whole set of documents to an output directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd); err != nil {
			return err
		}
		logger, closeLog = logging.New(types.LogConfig{
			File:    viper.GetString(keyLogFile),
			Verbose: viper.GetBool(keyVerbose),
		}, os.Stderr)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notes-export.yaml or ~/.config/notes-export/notes-export.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "also write JSON logs to this file (rotated)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug detail to stderr")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notes-export")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notes-export"))
		}
	}

	viper.SetEnvPrefix("NOTES_EXPORT")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
