// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docx2html CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docx2html/internal/logging"
	"github.com/pdiddy/docx2html/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logs is built from the log.* settings before any subcommand runs.
var logs *logging.Provider

// rootCmd is the base command for the docx2html CLI.
var rootCmd = &cobra.Command{
	Use:   "docx2html",
	Short: "Convert Word documents into lightweight HTML",
	Long: `docx2html converts DOCX documents into a small HTML vocabulary: h1/h2
headings, paragraphs with bold runs, FAQ questions, ul/ol lists and bordered
tables. Conversions are recorded in a local ledger so batch runs only redo
what changed.

Settings come from docx2html.yaml, DOCX2HTML_* environment variables (an
optional .env file is loaded first) and command flags, in increasing order
of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		p, err := logging.New(logConfig(cmd))
		if err != nil {
			return err
		}
		logs = p
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docx2html.yaml or ~/.config/docx2html/docx2html.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: json, console, or pretty")
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: loading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docx2html")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docx2html"))
		}
	}

	defaults := types.DefaultConfig()
	viper.SetDefault("faq_policy", string(defaults.Conversion.FAQPolicy))
	viper.SetDefault("list_policy", string(defaults.Conversion.ListPolicy))
	viper.SetDefault("output_dir", defaults.Conversion.OutputDir)
	viper.SetDefault("standalone", defaults.Conversion.Standalone)
	viper.SetDefault("ledger_dir", defaults.Ledger.Dir)
	viper.SetDefault("ledger_max_results", defaults.Ledger.MaxResults)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.format", defaults.Log.Format)

	viper.SetEnvPrefix("DOCX2HTML")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// conversionConfig merges the configured conversion settings with any
// flags set on cmd.
func conversionConfig(cmd *cobra.Command) types.ConversionConfig {
	cfg := types.ConversionConfig{
		FAQPolicy:  types.FAQPolicy(viper.GetString("faq_policy")),
		ListPolicy: types.ListPolicy(viper.GetString("list_policy")),
		OutputDir:  viper.GetString("output_dir"),
		Standalone: viper.GetBool("standalone"),
	}
	flags := cmd.Flags()
	if flags.Changed("faq-policy") {
		v, _ := flags.GetString("faq-policy")
		cfg.FAQPolicy = types.FAQPolicy(v)
	}
	if flags.Changed("list-policy") {
		v, _ := flags.GetString("list-policy")
		cfg.ListPolicy = types.ListPolicy(v)
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("standalone") {
		cfg.Standalone, _ = flags.GetBool("standalone")
	}
	if flags.Lookup("force") != nil {
		cfg.Force, _ = flags.GetBool("force")
	}
	return cfg
}

func ledgerConfig(cmd *cobra.Command) types.LedgerConfig {
	cfg := types.LedgerConfig{
		Dir:        viper.GetString("ledger_dir"),
		MaxResults: viper.GetInt("ledger_max_results"),
	}
	if f := cmd.Flags().Lookup("ledger-dir"); f != nil && f.Changed {
		cfg.Dir = f.Value.String()
	}
	return cfg
}

func logConfig(cmd *cobra.Command) types.LogConfig {
	cfg := types.LogConfig{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Format = v
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
