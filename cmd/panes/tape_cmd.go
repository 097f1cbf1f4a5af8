package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Gaurav-Gosain/panes/internal/observability"
	"github.com/Gaurav-Gosain/panes/internal/tape"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTapeCmd() *cobra.Command {
	var verbose bool

	tapeCmd := &cobra.Command{
		Use:   "tape",
		Short: "Run and check .tape layout scripts",
		Long: `Run and check .tape layout scripts

A tape script builds a panel group, drives it with drags, collapses and
resizes, and checks the resulting pixel layout with expect lines. Frames
only advance when the script says so, which makes animations reproducible.`,
	}

	tapeRunCmd := &cobra.Command{
		Use:     "run <file>...",
		Aliases: []string{"play"},
		Short:   "Play tape scripts",
		Long: `Play each script against a fresh panel group

The final pixel layout of every script is printed. The command fails on the
first script whose expectations are not met.`,
		Example: `  # Play a script
  panes tape run drag.tape

  # Show engine events while playing
  panes tape run -v collapse.tape`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			logger, err := tapeLogger(verbose)
			if err != nil {
				return err
			}
			defer observability.Sync()

			for _, path := range args {
				p := tape.NewPlayer(logger.With(zap.String("tape", path)))
				if err := playFile(p, path); err != nil {
					return err
				}
				fmt.Printf("%s: %s\n", path, p.PixelTemplate())
				for _, n := range p.Notices() {
					fmt.Printf("  collapse request: %s collapsed=%t\n", n.PanelID, n.Collapsed)
				}
			}
			return nil
		},
	}
	tapeRunCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log engine events to stderr")

	tapeValidateCmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check tape scripts for syntax errors",
		Long:  `Parse each script without running it and report syntax errors`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var errs []error
			for _, path := range args {
				n, err := validateFile(path)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
					continue
				}
				fmt.Printf("%s: %d commands\n", path, n)
			}
			return errors.Join(errs...)
		},
	}

	tapeCmd.AddCommand(tapeRunCmd, tapeValidateCmd)
	return tapeCmd
}

// tapeLogger logs to stderr in verbose mode and nowhere otherwise.
func tapeLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	if err := observability.Initialize(observability.Options{
		Level:   "debug",
		Format:  "console",
		Console: os.Stderr,
		Name:    "tape",
	}); err != nil {
		return nil, err
	}
	return observability.GetLogger(), nil
}

func playFile(p *tape.Player, path string) error {
	f, err := os.Open(path) // #nosec G304 - path is given by the user
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := p.Play(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func validateFile(path string) (int, error) {
	f, err := os.Open(path) // #nosec G304 - path is given by the user
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()
	cmds, err := tape.Parse(f)
	return len(cmds), err
}
