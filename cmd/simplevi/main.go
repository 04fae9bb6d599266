package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath   string
	debug        bool
	scrollOnLeft bool
)

var errorFormat = color.New(color.FgHiRed).SprintFunc()

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorFormat("Error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "simplevi",
		Short: "A very small modal text editor",
		Long: `simplevi is a tiny vi-like editor for the terminal.

Keys:
  i              enter insert mode (Esc leaves it)
  h j k l        move left, down, up, right (arrows and space work too)
  :w <file>      write the buffer to file
  :wq <file>     write and quit
  :q             quit without writing`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd.Flags().Changed("scroll-on-left"))
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/simplevi/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging and the cursor status line")
	rootCmd.Flags().BoolVar(&scrollOnLeft, "scroll-on-left", false, "scroll when moving left, like every other motion")

	// Add subcommands
	rootCmd.AddCommand(
		newInitConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}
