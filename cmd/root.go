package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HaByeong/WhaleStream/internal/api"
	"github.com/HaByeong/WhaleStream/internal/auth"
	"github.com/HaByeong/WhaleStream/internal/logger"
	"github.com/HaByeong/WhaleStream/internal/output"
	"github.com/HaByeong/WhaleStream/internal/ranking"
	"github.com/HaByeong/WhaleStream/internal/session"
	"github.com/HaByeong/WhaleStream/internal/strategy"
	"github.com/HaByeong/WhaleStream/internal/trade"
)

var (
	cfgFile string
	format  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "whalestream",
	Short: "WhaleStream - simulated stock trading from your terminal",
	Long: output.HeaderStyle.Render(`
╔═══════════════════════════════════════════════════════════╗
║  WhaleStream CLI - Simulated Trading & Portfolio Ranking  ║
╚═══════════════════════════════════════════════════════════╝
`) + `
Trade simulated Korean stocks, backtest strategies and climb the
portfolio rankings. Works against a running WhaleStream backend and
falls back to demo data while the backend is still being built.

Get started:
  whalestream auth signup     Create an account
  whalestream auth login      Login (demo / demo123 works offline)
  whalestream market          Watch the market board
  whalestream --help          Show all commands`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.Init(level, true)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.whalestream/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "table", "output format: table, json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, output.ErrorStyle.Render("Error: ")+err.Error())
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".whalestream")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			fmt.Fprintln(os.Stderr, output.ErrorStyle.Render("Error creating config dir: ")+err.Error())
		}

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetDefault("api_url", "http://localhost:8080")
	viper.SetDefault("format", "table")

	viper.AutomaticEnv()

	// Missing config file is fine, defaults apply.
	_ = viper.ReadInConfig()
}

// getFormat resolves the output format. The flag is bound to viper, which
// ranks an explicit --format above the config file and the config file above
// the flag's default.
func getFormat() string {
	return viper.GetString("format")
}

// services bundles everything a command needs, sharing one session store and
// one API client so the reissue handler and the auth service write the same
// state.
type services struct {
	sessions *session.Store
	auth     *auth.Service
	trade    *trade.Service
	strategy *strategy.Service
	ranking  *ranking.Service
}

func newServices() (*services, error) {
	dir, err := session.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("locate session dir: %w", err)
	}
	store := session.NewStore(dir)
	client := api.New(viper.GetString("api_url"), store, logger.Logger)
	authSvc := auth.NewService(client, store, logger.Logger)
	return &services{
		sessions: store,
		auth:     authSvc,
		trade:    trade.NewService(client, logger.Logger, authSvc.CurrentUserID),
		strategy: strategy.NewService(client, logger.Logger),
		ranking:  ranking.NewService(client, logger.Logger),
	}, nil
}

// requireAuth gates protected commands. Token presence is all that is
// checked; a stale token is only caught when the backend rejects it.
func requireAuth(cmd *cobra.Command) (*services, error) {
	svcs, err := newServices()
	if err != nil {
		output.Error(err.Error())
		return nil, err
	}
	if !svcs.auth.IsAuthenticated() {
		output.Error(fmt.Sprintf("Login required for '%s'.", cmd.CommandPath()))
		output.Info("Run 'whalestream auth login' first.")
		return nil, fmt.Errorf("not authenticated")
	}
	return svcs, nil
}

// printErr renders a command failure, turning an expired session into the
// login instruction instead of a raw error string.
func printErr(err error) {
	if errors.Is(err, api.ErrSessionExpired) {
		output.Error("Session expired and could not be renewed.")
		output.Info("Run 'whalestream auth login' to login again.")
		return
	}
	output.Error(err.Error())
}

// watchLoop re-renders on a fixed interval until interrupted. The ticker dies
// with the context so no update fires after teardown.
func watchLoop(interval time.Duration, render func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := render(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := render(ctx); err != nil {
				return err
			}
		}
	}
}
