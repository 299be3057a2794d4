package main

import (
	"fmt"
	"os"

	"genesis-tui/internal/logging"
	"genesis-tui/internal/session"
	"genesis-tui/internal/settings"
	"genesis-tui/internal/storage"
	"genesis-tui/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	dataLocation string
	storeKind    string
	storePath    string
	themeSlug    string
	logFile      string
	configPath   string
	verbose      bool

	// Resolved in PersistentPreRunE
	cfg    settings.Settings
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "genesis-tui",
	Short: "Read the book of Genesis in the terminal",
	Long: `genesis-tui loads chapter and verse data from a JSON document and lets you
page through chapters and keep a list of favorite verses.

The data location may be a file path or an http(s) URL. Favorites are stored
locally in a JSON file or an SQLite database.

Run without arguments to start the reader.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadSettings()
		if err != nil {
			// A broken config file must not stop the reader.
			fmt.Fprintf(os.Stderr, "warning: ignoring settings: %v\n", err)
		}
		applyFlags(cmd)

		logger, err = logging.New(cfg.LogFile, verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runReader,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&dataLocation, "data", "d", "", "verse data file or URL (default genesis.json)")
	flags.StringVar(&storeKind, "store", "", "favorites store: file, sqlite or memory")
	flags.StringVar(&storePath, "store-path", "", "favorites store location")
	flags.StringVar(&themeSlug, "theme", "", "colour theme")
	flags.StringVar(&logFile, "log-file", "", "log file (default in the user cache dir)")
	flags.StringVar(&configPath, "config", "", "settings file (default in the user config dir)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(showCmd, favoritesCmd, toggleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSettings() (settings.Settings, error) {
	if configPath != "" {
		return settings.LoadFrom(configPath)
	}
	return settings.Load()
}

func saveSettings(s settings.Settings) error {
	if configPath != "" {
		return settings.SaveTo(configPath, s)
	}
	return settings.Save(s)
}

// applyFlags overrides settings with flags set on the command line.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataLocation = dataLocation
	}
	if flags.Changed("store") {
		cfg.Store = storage.Kind(storeKind)
	}
	if flags.Changed("store-path") {
		cfg.StorePath = storePath
	}
	if flags.Changed("theme") {
		cfg.Theme = themeSlug
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
}

// newSession opens the favorites store and builds a session; the dataset is
// not loaded yet.
func newSession() (*session.Session, error) {
	kv, err := storage.Open(cfg.Store, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites store: %w", err)
	}

	logger.Debug("Favorites store opened",
		zap.String("kind", string(cfg.Store)),
		zap.String("path", cfg.StorePath))

	return session.New(session.Options{
		Location: cfg.DataLocation,
		Store:    kv,
		Logger:   logger,
	}), nil
}

func runReader(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	model := ui.NewModel(ui.Options{
		Session: s,
		Theme:   cfg.Theme,
		SaveTheme: func(slug string) error {
			cfg.Theme = slug
			return saveSettings(cfg)
		},
		Logger: logger,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
