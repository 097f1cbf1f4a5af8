package main

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/panes/internal/engine"
	"github.com/Gaurav-Gosain/panes/internal/layout"
	"github.com/Gaurav-Gosain/panes/internal/state"
	"github.com/Gaurav-Gosain/panes/internal/theme"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSnapshotCmd() *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:     "snapshot",
		Aliases: []string{"snap"},
		Short:   "Inspect saved layouts",
		Long:    `List, show and delete the layouts saved between runs`,
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved layouts",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withStore(listSnapshots)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <group>",
		Short: "Show the panels of a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withStore(func(store *state.Manager) error {
				return showSnapshot(store, args[0])
			})
		},
	}

	deleteCmd := &cobra.Command{
		Use:     "delete <group>...",
		Aliases: []string{"rm"},
		Short:   "Forget saved layouts",
		Long:    `Delete saved layouts so the next run starts from the configured defaults`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withStore(func(store *state.Manager) error {
				for _, id := range args {
					if err := store.Delete(id); err != nil {
						return err
					}
					fmt.Println("Deleted", id)
				}
				return nil
			})
		},
	}

	snapshotCmd.AddCommand(listCmd, showCmd, deleteCmd)
	return snapshotCmd
}

// withStore opens the configured snapshot database for the duration of fn.
func withStore(fn func(*state.Manager) error) error {
	userConfig, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(userConfig, zap.NewNop())
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("persistence is disabled in the config")
	}
	return errors.Join(fn(store), store.Close())
}

func listSnapshots(store *state.Manager) error {
	records, err := store.List()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No saved layouts")
		return nil
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(theme.CLITableHeader())
	key := lipgloss.NewStyle().Foreground(theme.CLITableKey())
	dim := lipgloss.NewStyle().Foreground(theme.CLITableDim())

	rows := [][]string{{"GROUP", "PANELS", "SAVED", "SIZE"}}
	for _, r := range records {
		panels := "?"
		if snap, err := engine.DecodeSnapshot(r.Data); err == nil {
			panels = strings.Join(layout.PanelIDs(snap.Items), ",")
		}
		rows = append(rows, []string{
			r.GroupID,
			panels,
			humanize.Time(r.SavedAt),
			humanize.Bytes(uint64(len(r.Data))),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for n, row := range rows {
		for i, cell := range row {
			padded := cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			switch {
			case n == 0:
				padded = header.Render(padded)
			case i == 0:
				padded = key.Render(padded)
			case i >= 2:
				padded = dim.Render(padded)
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(padded)
		}
		b.WriteString("\n")
	}
	_, err = fmt.Fprint(colorWriter(), b.String())
	return err
}

func showSnapshot(store *state.Manager, groupID string) error {
	rec, err := store.Get(groupID)
	if err != nil {
		return err
	}
	snap, err := engine.DecodeSnapshot(rec.Data)
	if err != nil {
		return fmt.Errorf("group %s: %w", groupID, err)
	}

	fmt.Printf("Group:       %s\n", snap.GroupID)
	fmt.Printf("Orientation: %s\n", snap.Orientation)
	fmt.Printf("Saved:       %s (%s)\n", rec.SavedAt.Format("2006-01-02 15:04:05"), humanize.Time(rec.SavedAt))
	fmt.Printf("Version:     %d\n\n", snap.Version)

	for _, it := range snap.Items {
		switch v := it.(type) {
		case layout.Panel:
			line := fmt.Sprintf("  panel  %-12s %-8s min=%s max=%s", v.ID, v.CurrentValue, v.Min, v.Max)
			if v.Collapsible {
				line += " collapsible"
			}
			if v.IsCollapsed() {
				line += " collapsed"
			}
			fmt.Println(line)
		case layout.Handle:
			fmt.Printf("  handle %-12s %s\n", v.ID, v.Size)
		}
	}
	return nil
}
