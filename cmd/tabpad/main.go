package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/xonecas/tabpad/internal/config"
	"github.com/xonecas/tabpad/internal/constants"
	"github.com/xonecas/tabpad/internal/store"
	"github.com/xonecas/tabpad/internal/tui"
)

var version = "0.1.0"

var (
	configPath string
	logPath    string
	noSession  bool
	theme      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   constants.AppName + " [files...]",
	Short: "A tabbed plain-text editor for the terminal",
	Long: `tabpad opens each file given in its own tab. Without files it restores
the tabs that were open when it last quit, or starts with one untitled tab.

Examples:
  tabpad                       # Restore the last session
  tabpad notes.txt todo.md     # Open two tabs
  tabpad --no-session          # Start with a single empty tab
  tabpad --theme github        # Use a light Chroma theme`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		dataDir, err := config.EnsureDataDir()
		if err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}

		logFile, err := setupLogging(cfg, dataDir)
		if err != nil {
			return err
		}
		defer logFile.Close()

		st, err := store.Open(filepath.Join(dataDir, constants.DBFile), cfg.Session.RecentLimitOrDefault())
		if err != nil {
			// The editor still works without a session or recent files.
			log.Warn().Err(err).Msg("store unavailable")
			st = nil
		}
		defer st.Close()

		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		log.Info().Str("version", version).Int("files", len(args)).Str("theme", cfg.UI.SyntaxThemeOrDefault()).Msg("starting")

		p := tea.NewProgram(
			tui.New(tui.Options{
				Config:    cfg,
				Store:     st,
				WorkDir:   wd,
				Files:     args,
				NoSession: noSession,
			}),
			tea.WithFilter(tui.MouseEventFilter),
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running %s: %w", constants.AppName, err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/tabpad/config.toml)")
	rootCmd.Flags().StringVar(&logPath, "log-file", "", "log file (default ~/.config/tabpad/tabpad.log)")
	rootCmd.Flags().BoolVar(&noSession, "no-session", false, "do not restore the previous session")
	rootCmd.Flags().StringVar(&theme, "theme", "", "Chroma syntax theme, overrides the config file")
}

// loadConfig reads --config when given, else the default path where a
// missing file means defaults. --theme wins over both.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, required := configPath, true
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		path, required = p, false
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("theme") {
		cfg.UI.SyntaxTheme = theme
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// setupLogging points the global zerolog logger at a file, since the
// terminal belongs to the UI.
func setupLogging(cfg *config.Config, dataDir string) (*os.File, error) {
	path := logPath
	if path == "" {
		path = filepath.Join(dataDir, constants.LogFile)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Log.LevelOrDefault())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}
