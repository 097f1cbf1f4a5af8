package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	jsoniter "github.com/json-iterator/go"
	tint "github.com/lrstanley/bubbletint/v2"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GetThemesDir returns the custom themes directory (~/.config/panes/themes/),
// creating it if needed.
func GetThemesDir() (string, error) {
	keepFile, err := xdg.ConfigFile("panes/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get themes directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

// LoadCustomThemes registers every *.json theme in themesDir with bubbletint
// and returns the ids it loaded. Broken files are logged and skipped.
func LoadCustomThemes(themesDir string) ([]string, error) {
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var loaded []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		t, err := LoadCustomThemeFile(filepath.Join(themesDir, entry.Name()))
		if err != nil {
			zap.L().Warn("skipping custom theme", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		tint.Register(t)
		loaded = append(loaded, t.ID)
	}
	return loaded, nil
}

// LoadCustomThemeFile reads one theme. The id defaults to the file name and
// missing colors are filled from the xterm palette.
func LoadCustomThemeFile(path string) (*tint.Tint, error) {
	// #nosec G304 - themes are read from the user's config directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var t tint.Tint
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse theme JSON: %w", err)
	}

	if t.ID == "" {
		base := filepath.Base(path)
		t.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if t.ID == "" {
		return nil, errors.New("theme has no ID")
	}
	if t.DisplayName == "" {
		t.DisplayName = t.ID
	}

	fillDefaults(&t)
	return &t, nil
}

// fillDefaults sets nil colors. Base colors come from the xterm palette;
// cursor and bright colors copy the color they derive from.
func fillDefaults(t *tint.Tint) {
	base := []struct {
		c   **tint.Color
		hex string
	}{
		{&t.Fg, "#e5e5e5"}, {&t.Bg, "#000000"},
		{&t.Black, "#000000"}, {&t.Red, "#cd0000"},
		{&t.Green, "#00cd00"}, {&t.Yellow, "#cdcd00"},
		{&t.Blue, "#0000ee"}, {&t.Purple, "#cd00cd"},
		{&t.Cyan, "#00cdcd"}, {&t.White, "#e5e5e5"},
	}
	for _, b := range base {
		if *b.c == nil {
			*b.c = tint.FromHex(b.hex)
		}
	}

	derived := []struct{ dst, src **tint.Color }{
		{&t.Cursor, &t.Fg},
		{&t.BrightBlack, &t.Black}, {&t.BrightRed, &t.Red},
		{&t.BrightGreen, &t.Green}, {&t.BrightYellow, &t.Yellow},
		{&t.BrightBlue, &t.Blue}, {&t.BrightPurple, &t.Purple},
		{&t.BrightCyan, &t.Cyan}, {&t.BrightWhite, &t.White},
	}
	for _, d := range derived {
		if *d.dst == nil {
			dup := **d.src
			*d.dst = &dup
		}
	}
}
