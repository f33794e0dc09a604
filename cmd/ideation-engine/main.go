// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ideation-engine CLI.
// Each assistant is a subcommand: problems, solutions, lean-canvas,
// business-canvas, business-plan, income-statement and evidence.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ideation-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from the secrets directory at startup.
var loadedSecrets secrets.Store

// logger is configured from --log-level before any subcommand runs.
var logger = zerolog.Nop()

// rootCmd is the base command for the ideation-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "ideation-engine",
	Short: "LLM-assisted business ideation grounded in web evidence",
	Long: `ideation-engine generates business ideation artifacts with a hosted language
model: current problems of a customer segment, existing and creative solutions,
lean and business canvases, and a four-role business plan whose market,
technology and financial analyses are grounded in searched, fetched and
summarized web sources.

Results are Markdown tables and prose written to stdout. Progress and logs go
to stderr.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(viper.GetString("log_level"))
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			Level(level).With().Timestamp().Logger()

		s, err := secrets.Load(viper.GetString("secrets_dir"), logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug().Strs("secrets", keys).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./ideation-engine.yaml or ~/.config/ideation-engine/ideation-engine.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("secrets-dir", secrets.DefaultDir, "directory of provider key files")
	pf.String("api-key", "", "LLM API key (overrides environment, config and secrets files)")
	pf.String("model", "", "LLM model identifier")
	pf.Float64("temperature", 0, "sampling temperature in [0,1]")
	pf.String("language", "", "response language: French or English")

	bindFlag("log_level", pf.Lookup("log-level"))
	bindFlag("secrets_dir", pf.Lookup("secrets-dir"))
	bindFlag("llm.model", pf.Lookup("model"))
	bindFlag("llm.temperature", pf.Lookup("temperature"))
	bindFlag("language", pf.Lookup("language"))

	setDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ideation-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ideation-engine"))
		}
	}

	viper.SetEnvPrefix("IDEATION_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
