package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/panes/internal/config"
	"github.com/Gaurav-Gosain/panes/internal/theme"
	"github.com/anmitsu/go-shlex"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage panes configuration",
		Long:  `Manage the panes configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the panes configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the panes configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi and nano in that order. The file is validated after the
editor exits.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var force bool
	configInitCmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"reset"},
		Short:   "Write the default configuration",
		Long: `Write the default panes configuration file

An existing file is only replaced with --force.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := resolveConfigPath()
			if err != nil {
				return err
			}
			if err := config.WriteDefaultConfig(path, force); err != nil {
				return err
			}
			fmt.Println("Wrote", path)
			return nil
		},
	}
	configInitCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configPathCmd, configEditCmd, configInitCmd)
	return configCmd
}

func newKeybindsCmd() *cobra.Command {
	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect panes keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd)
	return keybindsCmd
}

func resolveConfigPath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	return config.GetConfigPath()
}

func printConfigPath() error {
	path, err := resolveConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// editorCommand returns the editor to run as argv. $EDITOR may carry
// arguments, e.g. "code --wait".
func editorCommand() ([]string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			args, err := shlex.Split(v, true)
			if err != nil {
				return nil, fmt.Errorf("invalid $%s: %w", env, err)
			}
			if len(args) > 0 {
				return args, nil
			}
		}
	}
	for _, name := range []string{"vim", "vi", "nano"} {
		if path, err := exec.LookPath(name); err == nil {
			return []string{path}, nil
		}
	}
	return nil, errors.New("no editor found, set $EDITOR")
}

func editConfigFile() error {
	path, err := resolveConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := config.WriteDefaultConfig(path, false); err != nil {
			return err
		}
	}

	argv, err := editorCommand()
	if err != nil {
		return err
	}
	// #nosec G204 - the editor is chosen by the user
	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if _, _, err := config.LoadFile(path); err != nil {
		return err
	}
	fmt.Println("Configuration is valid")
	return nil
}

func listKeybindings() error {
	userConfig, err := loadConfig()
	if err != nil {
		return err
	}
	registry := config.NewKeybindRegistry(userConfig)

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader())
	key := lipgloss.NewStyle().Foreground(theme.CLITableKey())
	dim := lipgloss.NewStyle().Foreground(theme.CLITableDim())

	width := 0
	sections := config.GetKeybindings(registry)
	for _, s := range sections {
		for _, kb := range s.Bindings {
			width = max(width, lipgloss.Width(kb.Key))
		}
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(header.Render(s.Title))
		if s.Condition != "" {
			b.WriteString(dim.Render(" (when " + s.Condition + ")"))
		}
		b.WriteString("\n")
		for _, kb := range s.Bindings {
			pad := strings.Repeat(" ", width-lipgloss.Width(kb.Key))
			b.WriteString("  " + key.Render(kb.Key) + pad + "  " + kb.Description + "\n")
		}
	}
	_, err = fmt.Fprint(colorWriter(), b.String())
	return err
}
