package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/servline/menuqa/internal/corrections"
	"github.com/servline/menuqa/internal/menu"
	"github.com/servline/menuqa/internal/projectconfig"
	"github.com/servline/menuqa/internal/repair"
)

// loadItemsFile reads a JSON array of extracted menu items.
func loadItemsFile(path string) ([]*menu.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raws []map[string]any
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return menu.FromMaps(raws), nil
}

// writeItemsFile writes items as indented JSON. "-" means stdout.
func writeItemsFile(path string, items []*menu.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	if path == "-" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// loadProjectConfig resolves .menuqa.yaml starting next to the items
// file, so a config checked in beside the data wins over one in the
// working directory.
func loadProjectConfig(itemsPath string) (*projectconfig.ProjectConfig, error) {
	cfg, err := projectconfig.Load(filepath.Dir(itemsPath))
	if err != nil {
		return nil, err
	}
	// The --debug flag is handled in PersistentPreRun, before the config
	// location is known; a project-level default kicks in here.
	if cfg.Defaults.Debug != nil && *cfg.Defaults.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	return cfg, nil
}

// resolveFormat picks the output format from the flag, falling back to
// the project config default when the flag is empty.
func resolveFormat(flagValue string, cfg *projectconfig.ProjectConfig) (string, error) {
	format := flagValue
	if format == "" {
		format = cfg.Defaults.Format
	}
	if format != "table" && format != "json" {
		return "", fmt.Errorf("unsupported format %q: must be table or json", format)
	}
	return format, nil
}

// newGenerator builds a recommendation generator whose name corrector
// carries any project-level correction entries and vocabulary.
func newGenerator(cfg *projectconfig.ProjectConfig) *repair.Generator {
	corrector := corrections.New(corrections.Options{
		Extra:      cfg.Corrections.Extra,
		Vocabulary: cfg.Corrections.Vocabulary,
		Threshold:  cfg.Corrections.FuzzyThreshold,
	})
	return &repair.Generator{Corrector: corrector}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
