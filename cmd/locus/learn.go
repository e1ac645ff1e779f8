package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/locus/internal/cli"
)

// learnCmd represents the learn command
var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Learn state predicates and print the rewritten domain",
	Long: `Learns one state machine per object type from the traces and prints a
Markdown report: the machines, their hidden parameters and the rewritten
operator preconditions and effects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := learnOptions(cmd)
		opts.Raw, _ = cmd.Flags().GetBool("raw")
		opts.Banner, _ = cmd.Flags().GetBool("banner")

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		return interrupted(sc, cli.RunLearn(sc, opts, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(learnCmd)

	learnCmd.Flags().Bool("raw", false, "Print Markdown source instead of rendering it")
	learnCmd.Flags().Bool("banner", true, "Show the banner on interactive terminals")
}
