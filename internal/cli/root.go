// Package cli wires the hdrbatch cobra commands to the grouping engine.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/hdrbatch/internal/config"
	"github.com/backmassage/hdrbatch/internal/logging"
)

// ErrFailed is returned by commands whose failures were already logged.
var ErrFailed = errors.New("finished with errors")

const flagConfig = "config"

// app is the state shared by the subcommands of one root command.
type app struct {
	cfg        config.Config
	configPath string
	log        *logging.Logger
}

// NewRootCommand creates the hdrbatch root command and its subcommands.
func NewRootCommand(version, commit string) *cobra.Command {
	a := &app{cfg: config.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "hdrbatch",
		Short: "Group exposure brackets for HDR merging",
		Long: `hdrbatch sorts bracketed exposures in natural order and groups them into
HDR merge jobs. A .txt manifest next to the images lists the files of one
bracket (comma or line separated); every file no manifest claims is split
into consecutive brackets of --interval files.

Nothing is merged: hdrbatch prints the brackets, checks that a folder will
group cleanly, and writes plans for the merge step.`,
		Version:           fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.prepare,
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&a.configPath, flagConfig, config.DefaultConfigFile, "YAML config file")
	config.BindFlags(fs, &a.cfg)

	cmd.AddCommand(
		newPlanCommand(a),
		newRangesCommand(a),
		newCheckCommand(a),
		newShowCommand(a),
	)
	return cmd
}

// prepare resolves the configuration (defaults < config file < flags) and
// opens the logger on the command's writers.
func (a *app) prepare(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if flags.Changed(flagConfig) {
		if _, err := os.Stat(a.configPath); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	}
	if err := config.MergeFile(a.configPath, &a.cfg, flags); err != nil {
		return err
	}
	config.ApplyNegatedFlags(flags, &a.cfg)
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.NewLoggerTo(&a.cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	a.log = log
	return nil
}

// close releases the logger opened by prepare.
func (a *app) close() {
	if a.log != nil {
		a.log.Close()
	}
}
