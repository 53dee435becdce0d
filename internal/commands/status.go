package commands

import (
	"fmt"

	"github.com/sdpower/ccwatch-go/internal/output"
	"github.com/spf13/cobra"
)

func NewStatusCommand() *cobra.Command {
	var (
		format     string
		detail     bool
		configPath string
		noRemote   bool
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show current session window usage",
		Long:  `Run one reconciliation cycle and print the current window's usage.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if noRemote {
				cfg.Remote.Enabled = false
			}

			log := newLogger(debug)
			defer log.Sync()

			engine := buildEngine(cfg, log)
			opts := displayOptions(cfg)

			snap, err := engine.Reconcile(cmd.Context())
			if err != nil {
				fmt.Println(output.ErrorLine(opts))
				return err
			}

			switch {
			case format == "json":
				text, err := output.FormatJSON(snap)
				if err != nil {
					return fmt.Errorf("failed to format snapshot: %w", err)
				}
				fmt.Println(text)
			case detail:
				fmt.Print(output.DetailTable(snap))
			default:
				fmt.Println(output.StatusLine(snap, opts))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json)")
	cmd.Flags().BoolVar(&detail, "detail", false, "Show the full snapshot breakdown")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.Flags().BoolVar(&noRemote, "no-remote", false, "Skip the remote usage endpoint")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}
