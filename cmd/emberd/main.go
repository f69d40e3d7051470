// Command emberd starts the server. Flag defaults seed viper; an
// optional --config file overrides any flag not set explicitly on the
// command line, and explicitly set flags take precedence over the file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/emberkv/ember/command"
	"github.com/emberkv/ember/config"
	"github.com/emberkv/ember/reactor"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "emberd",
	Short: "emberd is an in-memory, Redis-wire-protocol-compatible key-value server",
	RunE:  run,
}

func init() {
	defaults := config.Default()
	rootCmd.Flags().String("host", defaults.Host, "address to bind")
	rootCmd.Flags().Int("port", defaults.Port, "port to listen on")
	rootCmd.Flags().Int("backlog", defaults.Backlog, "advisory listen backlog")
	rootCmd.Flags().Int("arena-size", defaults.ArenaCapacity, "per-connection arena size in bytes")
	rootCmd.Flags().Int("read-buffer-size", defaults.ReadBufferSize, "per-connection socket read buffer size in bytes")
	rootCmd.Flags().Int("sweep-max-checks", defaults.SweepMaxChecks, "entries examined per active-expiration pass")
	rootCmd.Flags().Int("sweep-threshold", defaults.SweepThreshold, "commands processed between active-expiration passes (0 disables)")
	rootCmd.Flags().Bool("strict-nil-replies", defaults.StrictNilReplies, "reply with the real RESP null instead of a literal (nil) bulk string")
	rootCmd.Flags().StringVarP(&configFile, "config", "f", "", "path to a yaml/json/toml config file (optional, overrides flag defaults)")

	_ = viper.BindPFlags(rootCmd.Flags())
}

func run(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	cfg := config.Config{
		Host:             viper.GetString("host"),
		Port:             viper.GetInt("port"),
		Backlog:          viper.GetInt("backlog"),
		ArenaCapacity:    viper.GetInt("arena-size"),
		ReadBufferSize:   viper.GetInt("read-buffer-size"),
		SweepMaxChecks:   viper.GetInt("sweep-max-checks"),
		SweepThreshold:   viper.GetInt("sweep-threshold"),
		StrictNilReplies: viper.GetBool("strict-nil-replies"),
	}
	command.SetStrictNilReplies(cfg.StrictNilReplies)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := reactor.New(cfg)
	fmt.Printf("emberd listening on %s (arena=%dB sweep=%d cmds/%d entries)\n",
		cfg.Address(), cfg.ArenaCapacity, cfg.SweepThreshold, cfg.SweepMaxChecks)
	return srv.ListenAndServe(ctx)
}

func main() {
	start := time.Now()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "emberd: %v (ran %s)\n", err, time.Since(start))
		os.Exit(1)
	}
}
