package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LFroesch/trio/internal/browser"
	"github.com/LFroesch/trio/internal/config"
	"github.com/LFroesch/trio/internal/fileops"
	"github.com/LFroesch/trio/internal/logger"
	"github.com/LFroesch/trio/internal/watch"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string
	var hidden, watchDir bool

	cmd := &cobra.Command{
		Use:     "trio [directory]",
		Short:   "A three-pane directory browser",
		Long:    `Trio shows the parent, current and child directory side by side and edits them with vim-style keys.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := ""
			if len(args) > 0 {
				start = args[0]
			}
			pwd, err := startDir(start)
			if err != nil {
				return fmt.Errorf("error getting current directory: %w", err)
			}

			if err := logger.Init(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
			}
			defer logger.Close()

			var cfg *config.Config
			if configPath != "" {
				cfg = config.LoadFrom(configPath)
			} else {
				cfg = config.Load()
			}
			if cmd.Flags().Changed("hidden") {
				cfg.ShowHidden = hidden
			}
			if cmd.Flags().Changed("watch") {
				cfg.Watch = watchDir
			}

			return run(pwd, cfg, configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/trio/trio-config.json)")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "show hidden files")
	cmd.Flags().BoolVar(&watchDir, "watch", false, "refresh when the current directory changes")
	return cmd
}

// startDir resolves the directory to open. An argument that is not a
// directory falls back to the working directory.
func startDir(arg string) (string, error) {
	if arg != "" {
		if abs, err := filepath.Abs(arg); err == nil {
			if info, err := os.Stat(abs); err == nil && info.IsDir() {
				return abs, nil
			}
		}
	}
	return os.Getwd()
}

func run(pwd string, cfg *config.Config, configPath string) error {
	engine := browser.New(browser.Options{
		Pwd:        pwd,
		ShowHidden: cfg.ShowHidden,
		Order:      cfg.ListOrder(),
		Tags:       cfg.Tags,
		Purge: func(path string) error {
			return fileops.Purge(path, cfg.Trash)
		},
	})

	var watcher *watch.Watcher
	if cfg.Watch {
		w, err := watch.New(watch.DefaultDelay)
		if err != nil {
			logger.Warn("Directory watching disabled: %v", err)
		} else {
			watcher = w
			defer watcher.Close()
			if err := watcher.Watch(pwd); err != nil {
				logger.Warn("Failed to watch %s: %v", pwd, err)
			}
		}
	}

	p := tea.NewProgram(newModel(engine, cfg, watcher), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	cfg.Tags = engine.Tags()
	var err error
	if configPath != "" {
		err = config.SaveTo(cfg, configPath)
	} else {
		err = config.Save(cfg)
	}
	if err != nil {
		logger.Error("Failed to save config: %v", err)
	}
	return nil
}
