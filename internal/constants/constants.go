// Package constants holds names shared by the CLI and the config layer.
package constants

// AppName names the binary, the data directory and the env var prefix.
const AppName = "tabpad"

// Files kept under the data directory (~/.config/tabpad).
const (
	ConfigFile = "config.toml"
	DBFile     = "tabpad.db"
	LogFile    = "tabpad.log"
)

// DefaultSyntaxTheme is the Chroma theme used when none is configured.
//
// Dark themes that suit terminals: vulcan, monokai, dracula, nord, onedark,
// github-dark, catppuccin-mocha, tokyonight-night. Light: github, vs,
// solarized-light, catppuccin-latte.
const DefaultSyntaxTheme = "vulcan"
