package conui

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/conui/retained"
	"github.com/agiangrant/conui/tw"
)

// DefaultConfigFile is the file name `conui init` writes and `conui run`
// looks for when no path is given.
const DefaultConfigFile = "conui.toml"

// Config represents the conui.toml (or .yaml) configuration file.
type Config struct {
	App   AppConfig   `toml:"app" yaml:"app"`
	Log   LogConfig   `toml:"log" yaml:"log"`
	Input InputConfig `toml:"input" yaml:"input"`
	Theme ThemeConfig `toml:"theme" yaml:"theme"`
}

type AppConfig struct {
	Title string `toml:"title" yaml:"title"`
	// Mouse enables mouse reporting
	Mouse bool `toml:"mouse" yaml:"mouse"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level" yaml:"level"`
	// File receives log records. Empty discards them; the terminal is
	// occupied by the UI.
	File string `toml:"file" yaml:"file"`
}

type InputConfig struct {
	// DoubleClickMS is the multi-click window in milliseconds
	DoubleClickMS int  `toml:"double_click_ms" yaml:"double_click_ms"`
	TabNavigation bool `toml:"tab_navigation" yaml:"tab_navigation"`
}

type ThemeConfig struct {
	Foreground     string `toml:"foreground" yaml:"foreground"`
	Background     string `toml:"background" yaml:"background"`
	TextBoxClasses string `toml:"textbox_classes" yaml:"textbox_classes"`
	ButtonClasses  string `toml:"button_classes" yaml:"button_classes"`
	// Palette maps alias names to #rrggbb colors, usable as text-<alias>
	// and bg-<alias>.
	Palette map[string]string `toml:"palette" yaml:"palette"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		App: AppConfig{
			Title: "conui",
			Mouse: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Input: InputConfig{
			DoubleClickMS: 500,
			TabNavigation: true,
		},
		Theme: ThemeConfig{
			Foreground:     "gray",
			Background:     "black",
			TextBoxClasses: retained.DefaultTextBoxClasses,
			ButtonClasses:  retained.DefaultButtonClasses,
		},
	}
}

// LoadConfig reads path over the defaults. The format follows the
// extension: .yaml and .yml are YAML, anything else TOML.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = toml.Unmarshal(data, &config)
	}
	if err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig writes config to path as TOML.
func SaveConfig(path string, config Config) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Input.DoubleClickMS <= 0 {
		errs = append(errs, fmt.Errorf("input.double_click_ms must be positive, got %d", c.Input.DoubleClickMS))
	}
	for _, name := range []string{c.Theme.Foreground, c.Theme.Background} {
		if _, err := c.Theme.color(name); err != nil {
			errs = append(errs, err)
		}
	}
	for alias, hex := range c.Theme.Palette {
		if _, err := tw.ParseHex(hex); err != nil {
			errs = append(errs, fmt.Errorf("theme.palette.%s: %w", alias, err))
		}
	}
	return errors.Join(errs...)
}

// SlogLevel maps the configured level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// TreeConfig converts the input section into tree settings.
func (c Config) TreeConfig(logger *slog.Logger) retained.TreeConfig {
	tc := retained.DefaultTreeConfig()
	tc.Logger = logger
	tc.DoubleClickTime = time.Duration(c.Input.DoubleClickMS) * time.Millisecond
	tc.TabNavigation = c.Input.TabNavigation
	return tc
}

// color resolves a palette name, a configured alias or a hex value.
func (t ThemeConfig) color(name string) (tw.Color, error) {
	if strings.HasPrefix(name, "#") {
		return tw.ParseHex(name)
	}
	if c, ok := tw.ColorByName(name); ok {
		return c, nil
	}
	if hex, ok := t.Palette[strings.ToLower(name)]; ok {
		return tw.ParseHex(hex)
	}
	return tw.Black, fmt.Errorf("theme: unknown color %q", name)
}

// Apply registers the palette aliases with the style parser and installs
// the default attribute and control classes for controls created
// afterwards. Cached class parses are dropped so new aliases take effect.
// It returns the new default attribute.
func (t ThemeConfig) Apply() (retained.Attr, error) {
	aliases := make(map[string]tw.Color, len(t.Palette))
	for alias, hex := range t.Palette {
		c, err := tw.ParseHex(hex)
		if err != nil {
			return retained.DefaultAttr, fmt.Errorf("theme.palette.%s: %w", alias, err)
		}
		aliases[strings.ToLower(alias)] = c
	}
	tw.SetConfig(tw.ThemeConfig{Aliases: aliases})
	retained.ClearStyleCache()

	fg, err := t.color(t.Foreground)
	if err != nil {
		return retained.DefaultAttr, err
	}
	bg, err := t.color(t.Background)
	if err != nil {
		return retained.DefaultAttr, err
	}
	if t.TextBoxClasses != "" {
		retained.DefaultTextBoxClasses = t.TextBoxClasses
	}
	if t.ButtonClasses != "" {
		retained.DefaultButtonClasses = t.ButtonClasses
	}
	retained.DefaultAttr = retained.MakeAttr(fg, bg)
	return retained.DefaultAttr, nil
}
