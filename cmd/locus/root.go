package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/locus/internal/cli"
	"github.com/aretw0/locus/internal/presentation/tui"
)

var rootCmd = &cobra.Command{
	Use:   "locus",
	Short: "Locus learns object local states from plan traces",
	Long: `Locus reads a planning domain and a corpus of observed plans, induces one
state machine per object type and rewrites the domain's operators in terms of
the learned state predicates.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", tui.Status(false, "error:"), err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("domain", "d", "", "Domain description (.yaml or .json)")
	rootCmd.PersistentFlags().StringP("traces", "t", "", "Trace corpus file, or a directory of world documents")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (.yaml)")
	rootCmd.PersistentFlags().String("coverage", "", "Parameter coverage policy: exact or lenient")
	rootCmd.PersistentFlags().Bool("keep", false, "Keep declared predicates and conditions instead of replacing them")
	rootCmd.PersistentFlags().String("metrics-addr", "", "Serve Prometheus metrics on this address while learning")
	rootCmd.PersistentFlags().String("halt-redis", "", "Redis address polled for a shared halt flag")
	rootCmd.PersistentFlags().String("halt-key", "", "Key of the halt flag (prefixed with locus:)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable verbose stage logging")
}

// learnOptions collects the persistent flags into cli options.
func learnOptions(cmd *cobra.Command) cli.LearnOptions {
	flags := cmd.Flags()
	opts := cli.LearnOptions{}
	opts.DomainPath, _ = flags.GetString("domain")
	opts.TracesPath, _ = flags.GetString("traces")
	opts.ConfigPath, _ = flags.GetString("config")
	opts.Coverage, _ = flags.GetString("coverage")
	opts.Keep, _ = flags.GetBool("keep")
	opts.MetricsAddr, _ = flags.GetString("metrics-addr")
	opts.HaltRedis, _ = flags.GetString("halt-redis")
	opts.HaltKey, _ = flags.GetString("halt-key")
	opts.Debug, _ = flags.GetBool("debug")
	return opts
}

// interrupted rewrites the error of a run stopped by a signal.
func interrupted(sc *cli.SignalContext, err error) error {
	if err != nil && sc.Interrupted() {
		return fmt.Errorf("interrupted by %s", sc.Signal())
	}
	return err
}
