package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/locus/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [type...]",
	Short: "Export the learned state machines as a Mermaid diagram",
	Long:  `Learns the domain and outputs a Mermaid diagram (graph TD) with one subgraph per object type. Pass type names to restrict the output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		return interrupted(sc, cli.RunGraph(sc, learnOptions(cmd), args, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
