package commands

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sdpower/ccwatch-go/internal/output"
	"github.com/sdpower/ccwatch-go/internal/scheduler"
	"github.com/sdpower/ccwatch-go/internal/types"
	"github.com/sdpower/ccwatch-go/internal/watch"
	"github.com/spf13/cobra"
)

func NewWatchCommand() *cobra.Command {
	var (
		configPath string
		interval   int
		noColor    bool
		noRemote   bool
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch session window usage live",
		Long:  `Continuously reconcile usage on a timer and render it in the terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if interval > 0 {
				cfg.Refresh.IntervalMinutes = interval
			}
			if noRemote {
				cfg.Remote.Enabled = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := newLogger(debug)
			defer log.Sync()

			engine := buildEngine(cfg, log)
			opts := displayOptions(cfg)

			// Not a terminal: behave like a single status call so the
			// output stays pipeable.
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				snap, err := engine.Reconcile(cmd.Context())
				if err != nil {
					fmt.Println(output.ErrorLine(opts))
					return err
				}
				fmt.Println(output.StatusLine(snap, opts))
				return nil
			}

			updates := make(chan watch.Update, 8)
			sched := scheduler.New(engine, cfg.RefreshInterval(), func(snap types.Snapshot, err error) {
				// Drop rather than block if the view stopped draining.
				select {
				case updates <- watch.Update{Snapshot: snap, Err: err}:
				default:
				}
			}, log)

			ctx := cmd.Context()
			sched.Start(ctx)
			defer sched.Stop()

			model := watch.NewModel(watch.Options{
				Display: opts,
				NoColor: noColor,
			}, updates, sched.Poke)

			return watch.Run(ctx, model)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.Flags().IntVar(&interval, "interval", 0, "Refresh interval in minutes (overrides config)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&noRemote, "no-remote", false, "Skip the remote usage endpoint")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}
