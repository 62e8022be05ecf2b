package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"StockScout/internal/config"
	"StockScout/internal/feed"
	"StockScout/internal/model"
	"StockScout/internal/notifier"
	"StockScout/internal/reporter"
	"StockScout/internal/scheduler"
	"StockScout/internal/screener"
	"StockScout/internal/universe"
)

const version = "0.2.0"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scout",
		Short: "StockScout - trailing-average stock screener",
		Long: `StockScout screens a ticker universe for bullish signals: tickers whose
latest daily close is above their trailing simple moving average.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "configuration file path (default configs/config.yaml)")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newUniverseCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run one screening pass over the ticker universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			src, closeSrc, err := buildSource(cfg)
			if err != nil {
				return err
			}
			defer closeSrc()

			tickers, err := src.Tickers()
			if err != nil {
				return fmt.Errorf("resolve universe (%s): %w", src.Name(), err)
			}

			result, err := buildScreener(cfg).Scan(tickers)
			if err != nil {
				return err
			}

			if len(result.Matches) == 0 {
				fmt.Println("No bullish tickers found.")
				return nil
			}
			fmt.Printf("Bullish (%d of %d scanned): %s\n",
				len(result.Matches), result.Scanned, strings.Join(result.Tickers(), ", "))
			return nil
		},
	}
	addScanFlags(cmd)
	return cmd
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the screener on a cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			src, closeSrc, err := buildSource(cfg)
			if err != nil {
				return err
			}
			defer closeSrc()

			tn := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
			if !tn.Configured() {
				log.Println("[INFO] telegram not configured, reports go to the log only")
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sched := scheduler.NewScheduler(ctx, src, buildScreener(cfg), tn)
			if err := sched.RegisterAll(cfg.Schedule.ScanCron); err != nil {
				return fmt.Errorf("register cron tasks: %w", err)
			}
			sched.Start()
			defer sched.Stop()

			if os.Getenv("RUN_ON_START") == "true" {
				log.Println("[INFO] RUN_ON_START enabled, executing scan now")
				go sched.RunNow()
			}

			log.Println("[INFO] StockScout is watching. Press Ctrl+C to stop.")
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			log.Println("[INFO] shutdown signal received, stopping...")
			return nil
		},
	}
	addScanFlags(cmd)
	return cmd
}

func newUniverseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "universe",
		Short: "Print the resolved ticker universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			src, closeSrc, err := buildSource(cfg)
			if err != nil {
				return err
			}
			defer closeSrc()

			tickers, err := src.Tickers()
			if err != nil {
				return fmt.Errorf("resolve universe (%s): %w", src.Name(), err)
			}
			fmt.Printf("%s (%d tickers):\n", src.Name(), len(tickers))
			for _, t := range tickers {
				fmt.Println(t)
			}
			return nil
		},
	}
	addScanFlags(cmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("StockScout %s\n", version)
		},
	}
}

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().Int("window", model.DefaultWindow, "trailing-average length in trading days")
	cmd.Flags().Bool("verbose", false, "print per-ticker diagnostics")
	cmd.Flags().String("source", "", "ticker source: static, file or sp500")
	cmd.Flags().StringSlice("sector", nil, "GICS sector filter for the sp500 source (repeatable)")
	cmd.Flags().StringSlice("tickers", nil, "explicit ticker list, overrides the configured source")
	cmd.Flags().String("provider", "", "price data provider: yahoo or finance-go")
}

// loadConfig reads the config file, layers flag overrides on top, and
// validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("window") {
		cfg.Scan.Window, _ = cmd.Flags().GetInt("window")
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Scan.Verbose, _ = cmd.Flags().GetBool("verbose")
	}
	if cmd.Flags().Changed("source") {
		cfg.Universe.Source, _ = cmd.Flags().GetString("source")
	}
	if cmd.Flags().Changed("sector") {
		cfg.Universe.Sectors, _ = cmd.Flags().GetStringSlice("sector")
	}
	if cmd.Flags().Changed("tickers") {
		symbols, _ := cmd.Flags().GetStringSlice("tickers")
		cfg.Universe.Source = "static"
		cfg.Universe.Symbols = symbols
	}
	if cmd.Flags().Changed("provider") {
		cfg.DataSource.Provider, _ = cmd.Flags().GetString("provider")
	}
}

func buildFetcher(cfg *config.Config) feed.Fetcher {
	if cfg.DataSource.Provider == "finance-go" {
		return feed.NewFinanceFetcher()
	}
	return feed.NewYahooFetcher(cfg.Proxy)
}

func buildScreener(cfg *config.Config) *screener.Screener {
	var sink reporter.Sink
	if cfg.Scan.Verbose {
		sink = reporter.NewConsoleSink()
	}
	return screener.New(buildFetcher(cfg), cfg.Scan.Window, sink)
}

// buildSource resolves the configured ticker source. The returned func
// releases whatever the source holds open (the sp500 constituents store).
func buildSource(cfg *config.Config) (universe.Source, func(), error) {
	noop := func() {}
	switch cfg.Universe.Source {
	case "file":
		return universe.NewFileSource(cfg.Universe.File), noop, nil
	case "sp500":
		var store *universe.Store
		if cfg.Database.SQLitePath != "" {
			s, err := universe.OpenStore(cfg.Database.SQLitePath)
			if err != nil {
				log.Printf("[WARN] open constituents store failed, scraping without fallback: %v", err)
			} else {
				store = s
			}
		}
		src := universe.NewSP500Source(cfg.Universe.Sectors, store, cfg.Proxy)
		if store == nil {
			return src, noop, nil
		}
		return src, func() { store.Close() }, nil
	default:
		return universe.NewStaticSource(cfg.Universe.Symbols), noop, nil
	}
}
