// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the uhcatalog CLI. Each pipeline
// stage is a subcommand: scrape, convert, clean, combine, export, stats,
// and metadata. Stages read the previous stage's files under the data
// directory and are independently runnable.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkealoha/uhcatalog/internal/sources"
	"github.com/mkealoha/uhcatalog/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedOverrides holds catalog URL overrides loaded from the sources
// file at startup.
var loadedOverrides map[string]string

// rootCmd is the base command for the uhcatalog CLI.
var rootCmd = &cobra.Command{
	Use:   "uhcatalog",
	Short: "Course catalog extraction for the University of Hawaii system",
	Long: `uhcatalog extracts structured course records from the ten University of
Hawaii campus catalogs and emits per-institution JSON files, CSV exports,
and dataset statistics.

Each pipeline stage is a subcommand: scrape fetches HTML catalogs, convert
handles PDF catalogs, clean applies per-institution normalization, combine
merges and deduplicates, export writes CSV, and stats reports on the
combined dataset. Stages are independently runnable over a shared data
directory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("sources")
		overrides, err := sources.Load(path)
		if err != nil {
			return err
		}
		loadedOverrides = overrides
		if len(overrides) > 0 {
			keys := make([]string, 0, len(overrides))
			for k := range overrides {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded source overrides: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./uhcatalog.yaml or ~/.config/uhcatalog/config.yaml)")
	rootCmd.PersistentFlags().String("sources", "sources.yaml", "catalog URL overrides file")
	rootCmd.PersistentFlags().StringSlice("source", nil, "institution key to process (repeatable; default all)")
	rootCmd.PersistentFlags().String("data-dir", "data", "pipeline data directory")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("uhcatalog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "uhcatalog"))
		}
	}

	viper.SetEnvPrefix("UHCATALOG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// selectedInstitutions resolves the --source filter against the campus
// registry with URL overrides applied. No filter means every campus.
func selectedInstitutions(cmd *cobra.Command) ([]types.Institution, error) {
	keys, _ := cmd.Flags().GetStringSlice("source")
	if len(keys) == 0 {
		return sources.Apply(loadedOverrides), nil
	}

	insts := make([]types.Institution, 0, len(keys))
	for _, key := range keys {
		inst, err := sources.Resolve(key, loadedOverrides)
		if err != nil {
			return nil, err
		}
		insts = append(insts, inst)
	}
	return insts, nil
}

// dataDir returns the --data-dir flag, falling back to the config file.
func dataDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("data-dir")
	if !cmd.Flags().Changed("data-dir") {
		if v := viper.GetString("data_dir"); v != "" {
			dir = v
		}
	}
	return dir
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
