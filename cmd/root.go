package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/marcus/sheet/internal/config"
	"github.com/marcus/sheet/internal/demo"
)

var (
	version string

	presetName  string
	configPath  string
	listPresets bool
	noMouse     bool
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "sheetdemo",
	Short: "Interactive demo for the draggable bottom sheet component",
	Long: `sheetdemo - An interactive showcase for the sheet component.

A document scrolls in the background; sheets open over it with
drag-to-dismiss gestures, snap points and a dimming backdrop. Presets
select different sheet configurations and can be extended from a YAML
file.`,
	RunE: run,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = "dev"
	addFlags(rootCmd.Flags())
	cobra.OnInitialize(func() {
		if version != "" {
			rootCmd.Version = version
		}
	})
}

func addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&presetName, "preset", "P", "default", "sheet preset for the article sheet")
	fs.StringVarP(&configPath, "config", "c", "", "path to a presets YAML file")
	fs.BoolVar(&listPresets, "list-presets", false, "list available presets and exit")
	fs.BoolVar(&noMouse, "no-mouse", false, "disable mouse capture (keyboard only)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return err
	}

	if listPresets {
		names := cfg.Names()
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	preset, ok := cfg.Preset(presetName)
	if !ok {
		return fmt.Errorf("unknown preset %q (try --list-presets)", presetName)
	}
	opts, err := preset.Options()
	if err != nil {
		return fmt.Errorf("preset %q: %w", presetName, err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("sheetdemo needs an interactive terminal")
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if !noMouse {
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	_, err = tea.NewProgram(demo.New(opts), progOpts...).Run()
	return err
}

// resolveConfigPath prefers the --config flag, then the user config dir.
func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sheetdemo.yaml"
	}
	return filepath.Join(dir, "sheetdemo", "config.yaml")
}
