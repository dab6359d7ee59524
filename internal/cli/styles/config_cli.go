package styles

import "fmt"

// ConfigRenderer renders config status messages.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPaths lists the files the daemon reads and writes.
func (r *ConfigRenderer) RenderPaths(configFile, databaseFile, logDir string) string {
	row := func(icon, label, path string) string {
		return fmt.Sprintf("  %s %-9s %s\n",
			r.theme.Highlight.Render(icon),
			r.theme.Normal.Render(label),
			r.theme.Subtle.Render(path),
		)
	}
	return "\n" +
		row(IconConfig, "Config", configFile) +
		row(IconDatabase, "Database", databaseFile) +
		row(IconInfo, "Logs", logDir)
}

// RenderCreated announces a freshly written default config.
func (r *ConfigRenderer) RenderCreated(path string) string {
	return fmt.Sprintf("%s Created default configuration %s",
		r.theme.SuccessStyle.Render(IconCheck),
		r.theme.Subtle.Render(path),
	)
}
