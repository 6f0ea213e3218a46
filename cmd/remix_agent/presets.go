package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/style-remixer/internal/config"
	"github.com/jonathan/style-remixer/internal/observability"
	"github.com/jonathan/style-remixer/internal/presets"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	presetName   string
	presetStyle  string
	presetPrompt string
	presetOutput string
	presetJSON   bool
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage saved style presets",
	Long: `Manage saved style presets. Presets live in the SQLite file named by PRESETS_DB
(default style-remixer.db), or in PostgreSQL when DATABASE_URL is set.`,
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets, newest first",
	Args:  cobra.NoArgs,
	RunE:  runPresetsList,
}

var presetsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a style file, or the current configuration, as a preset",
	Args:  cobra.NoArgs,
	RunE:  runPresetsSave,
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Print a preset as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsShow,
}

var presetsDeleteCmd = &cobra.Command{
	Use:   "delete <name|id>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsDelete,
}

var presetsExportCmd = &cobra.Command{
	Use:   "export <name|id>",
	Short: "Export a preset to a portable JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsExport,
}

var presetsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a preset exported by this tool",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsImport,
}

var presetsUseCmd = &cobra.Command{
	Use:   "use <name|id>",
	Short: "Make a preset the current configuration",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsUse,
}

func init() {
	presetsListCmd.Flags().BoolVar(&presetJSON, "json", false, "Print presets as JSON")

	presetsSaveCmd.Flags().StringVarP(&presetName, "name", "n", "", "Preset name (default \"Style <date>\")")
	presetsSaveCmd.Flags().StringVarP(&presetStyle, "style", "s", "", "Style file to save (default: current configuration)")
	presetsSaveCmd.Flags().StringVarP(&presetPrompt, "prompt", "p", "", "Style description to keep with the preset")

	presetsExportCmd.Flags().StringVarP(&presetOutput, "out", "o", "", "Output file or directory (default: stdout)")

	presetsCmd.AddCommand(presetsListCmd, presetsSaveCmd, presetsShowCmd, presetsDeleteCmd,
		presetsExportCmd, presetsImportCmd, presetsUseCmd)
	rootCmd.AddCommand(presetsCmd)
}

// withStore opens the configured preset store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(store presets.Store) error) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	store, closeStore, err := openStore(cmd.Context(), settings)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(store)
}

func runPresetsList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(store presets.Store) error {
		list, err := store.ListPresets(cmd.Context(), localOwner)
		if err != nil {
			return fmt.Errorf("failed to list presets: %w", err)
		}
		if presetJSON {
			return printJSON(cmd, list)
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintPresets(list)
		return nil
	})
}

func runPresetsSave(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(store presets.Store) error {
		ctx := cmd.Context()

		var source *config.StyleFile
		if presetStyle != "" {
			style, err := config.LoadStyleFile(presetStyle)
			if err != nil {
				return err
			}
			source = style
		}

		cfg := source.StyleConfig()
		if source == nil {
			current, err := store.LoadCurrent(ctx, localOwner)
			if err != nil {
				return fmt.Errorf("failed to load current configuration: %w", err)
			}
			cfg = *current
		}

		saved, err := store.SavePreset(ctx, localOwner, presets.NewPreset(presetName, presetPrompt, cfg, time.Now()))
		if err != nil {
			return fmt.Errorf("failed to save preset: %w", err)
		}
		logger.Debug("preset saved", zap.String("id", saved.ID.String()))
		fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %q (%s)\n", saved.Name, saved.ID)
		return nil
	})
}

func runPresetsShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store presets.Store) error {
		preset, err := presets.Find(cmd.Context(), store, localOwner, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, preset)
	})
}

func runPresetsDelete(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store presets.Store) error {
		ctx := cmd.Context()
		preset, err := presets.Find(ctx, store, localOwner, args[0])
		if err != nil {
			return err
		}
		if err := store.DeletePreset(ctx, localOwner, preset.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %q (%s)\n", preset.Name, preset.ID)
		return nil
	})
}

func runPresetsExport(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store presets.Store) error {
		preset, err := presets.Find(cmd.Context(), store, localOwner, args[0])
		if err != nil {
			return err
		}
		data, err := presets.Export(preset)
		if err != nil {
			return err
		}

		if presetOutput == "" {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}
		path := presetOutput
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, presets.ExportFileName(preset))
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
		return nil
	})
}

func runPresetsImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	preset, err := presets.Import(data)
	if err != nil {
		return err
	}

	return withStore(cmd, func(store presets.Store) error {
		saved, err := store.SavePreset(cmd.Context(), localOwner, preset)
		if err != nil {
			return fmt.Errorf("failed to save preset: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported preset %q (%s)\n", saved.Name, saved.ID)
		return nil
	})
}

func runPresetsUse(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(store presets.Store) error {
		preset, err := presets.Use(cmd.Context(), store, localOwner, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Current style set to %q\n", preset.Name)
		return nil
	})
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
