package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/martinemde/marlea/loader"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

var rootCmd = &cobra.Command{
	Use:   "marlea",
	Short: "Reaction network parser",
	Long:  "Marlea reads chemical reaction network files and produces the network a stochastic simulator runs.",

	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./marlea.yaml if present)")
	rootCmd.PersistentFlags().StringP("format", "f", "yaml", "Output format: yaml, json, table, or crn")
	rootCmd.PersistentFlags().IntP("jobs", "j", 4, "Files parsed in parallel")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("jobs", rootCmd.PersistentFlags().Lookup("jobs"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	viper.SetEnvPrefix("MARLEA")
	viper.AutomaticEnv()
}

// setup reads the optional config file and builds the logger shared by all
// subcommands.
func setup(cmd *cobra.Command, _ []string) error {
	if err := readConfigFile(); err != nil {
		return err
	}

	level := slog.LevelWarn
	switch {
	case viper.GetBool("debug"):
		level = slog.LevelDebug
	case viper.GetBool("verbose"):
		level = slog.LevelInfo
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level:     level,
		AddSource: viper.GetBool("debug"),
	})
	logger = slog.New(h).With("invocation", uuid.New().String())
	logger.Debug("config loaded", "file", viper.ConfigFileUsed(), "format", viper.GetString("format"))
	return nil
}

func readConfigFile() error {
	if path := viper.GetString("config"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		return nil
	}

	viper.SetConfigName("marlea")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func newRegistry() *loader.Registry {
	return loader.NewDefaultRegistry(logger)
}
