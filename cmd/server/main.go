package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gardenguru/config"
)

var cfg config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "gardenguru",
	Short: "Plant care tracker: plants, watering schedules and suggested care tasks",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(os.Getenv("LOG_LEVEL"))
		cfg = config.Load()
		setupLogging(cfg.LogLevel)
	},
	SilenceUsage: true,
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		With().Timestamp().Caller().Logger()
}

func main() {
	rootCmd.AddCommand(serveCmd, deriveCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
