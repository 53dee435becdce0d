package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sdpower/ccwatch-go/internal/commands"
	"github.com/spf13/cobra"
)

func main() {
	ctx := context.Background()

	rootCmd := &cobra.Command{
		Use:   "ccwatch",
		Short: "Claude session window usage monitor",
		Long:  `A small monitor that reconciles remote and local usage sources into one status line.`,
	}

	rootCmd.AddCommand(
		commands.NewStatusCommand(),
		commands.NewWatchCommand(),
		commands.NewVersionCommand(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
