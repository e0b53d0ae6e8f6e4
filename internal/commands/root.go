package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Pam-La/hailstone/internal/config"
	"github.com/Pam-La/hailstone/internal/logger"
	"github.com/Pam-La/hailstone/internal/scan"
)

// NewRootCmd builds the hailstone command. The report goes to out and logs to
// the logger's writer.
func NewRootCmd(log *logger.Logger, out io.Writer) (*cobra.Command, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("HAILSTONE_LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)

	rootCmd := &cobra.Command{
		Use:   "hailstone",
		Short: "Reports hailstone sequences and the longest one below a bound",
		Long: `Prints the first and last four values and the length of the hailstone
sequence for a demonstration start value, then scans every start below the
limit and prints the one with the longest sequence.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			log.Flush()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScan(log, cfg, out)
		},
	}
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	cfg.AddFlags(rootCmd.Flags())
	log.AddLevelFlag(rootCmd.PersistentFlags())

	if cmd, err := NewVersionCommand(log, out); cmd != nil {
		rootCmd.AddCommand(cmd)
	} else {
		return nil, fmt.Errorf("could not set up 'version' command: %w", err)
	}

	return rootCmd, nil
}

func runScan(log *logger.Logger, cfg config.Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	driver := scan.NewDriver(driverConfig(cfg), log.Logger.WithName("scan"))
	defer driver.Close()

	log.V(1).Info("starting scan", "demoStart", cfg.DemoStart, "limit", cfg.Limit, "initialCapacity", cfg.InitialCapacity)

	res, err := driver.Run()
	if err != nil {
		log.Error(err, "scan failed")
		return err
	}
	return scan.WriteReport(out, res)
}

func driverConfig(cfg config.Config) scan.Config {
	return scan.Config{
		DemoStart:       cfg.DemoStart,
		Limit:           cfg.Limit,
		InitialCapacity: cfg.InitialCapacity,
		DigestKey:       cfg.DigestKeyBytes(),
	}
}
