package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zeusync/hoopbot/internal/config"
)

var flags struct {
	configPath string
	seed       int64
	logLevel   string
}

var rootCmd = &cobra.Command{
	Use:           "hoopbot",
	Short:         "A basketball robot that decides its shots with fuzzy logic",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().Int64Var(&flags.seed, "seed", 0, "random seed; 0 derives one from the clock")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn, error or silent")

	rootCmd.AddCommand(playCmd(), simulateCmd(), shotCmd(), rulesCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "hoopbot:", err)
		os.Exit(1)
	}
}

// loadConfig applies the persistent flags on top of the config file and pins
// the seed so every component sees the same one.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flags.seed
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	cfg.Seed = cfg.EffectiveSeed()
	return cfg, cfg.Validate()
}
