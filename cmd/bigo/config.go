package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/bigo/internal/config"
)

// Config command flags.
var configGlobal bool

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify bigo configuration",
	Long: `View and modify bigo configuration.

Bigo reads .bigo.yaml (or .bigo.toml) in the working directory. A global
config at ~/.config/bigo/config.yaml ($XDG_CONFIG_HOME/bigo) provides
defaults. Project settings override global settings, and flags override both.

Note: config set rewrites the file and will not preserve comments.`,
}

// configPathCmd prints where configuration is read from.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

// configShowCmd prints the fully resolved configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Long: `Show the configuration bigo would use, after applying built-in defaults,
the global config, the project config and any flags given.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configGetCmd retrieves a configuration value.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a resolved configuration value. With --global, read only the
global config file.

Examples:
  bigo config get model
  bigo config get --global provider`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the project config file, or in the global
config with --global. Values are auto-detected as bool, int, float, or string.

Examples:
  bigo config set provider anthropic
  bigo config set fallback_model none
  bigo config set --global cache_ttl 2h`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configUnsetCmd removes a configuration value.
var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

// configListCmd lists the values set in configuration files.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration values set in files",
	Long: `List every value set in the configuration files, annotated with the
file it comes from. Project values override global values.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "read the global config only")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to the global config")
	configUnsetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to the global config")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configListCmd)
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	_, src, err := config.LoadAll(workDir)
	if err != nil {
		return fail(err)
	}
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "global   %s\n", annotatePath(config.GlobalConfigPath(), src.Global))
	_, _ = fmt.Fprintf(w, "project  %s\n", annotatePath(projectPath(src.Project), src.Project))
	return nil
}

func annotatePath(path, found string) string {
	if found == "" {
		return path + " " + color.New(color.Faint).Sprint("(not found)")
	}
	return path
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := config.Write(cmd.OutOrStdout(), s.Config()); err != nil {
		return fail(err)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	if configGlobal {
		global, err := config.LoadGlobal()
		if err != nil {
			return fail(err)
		}
		cfg = global
	} else {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		cfg = s.Config()
	}

	if err := config.ValidateKey(args[0]); err != nil {
		return fail(err)
	}
	val, err := config.GetValue(cfg, args[0])
	if err != nil {
		return fail(err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, rawValue := args[0], args[1]
	if err := config.ValidateKey(key); err != nil {
		return fail(err)
	}
	err := editConfig(func(data map[string]any) error {
		return config.SetValue(data, key, rawValue)
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, rawValue)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	key := args[0]
	err := editConfig(func(data map[string]any) error {
		return config.UnsetValue(data, key)
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)
	return nil
}

// editConfig applies edit to the target config file, validating the result
// before writing it back.
func editConfig(edit func(map[string]any) error) error {
	target, err := targetPath()
	if err != nil {
		return err
	}
	data, err := config.LoadRaw(target)
	if err != nil {
		return exitError(ExitError, "bigo: loading config file: %v", err)
	}
	if err := edit(data); err != nil {
		return fail(err)
	}

	cfg, err := config.FromRaw(data)
	if err != nil {
		return exitError(ExitError, "bigo: invalid config after edit: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		return exitError(ExitError, "bigo: invalid config after edit: %v", err)
	}
	if err := config.WriteFile(target, data); err != nil {
		return exitError(ExitError, "bigo: writing config: %v", err)
	}
	return nil
}

// targetPath picks the file config set and unset write to: the global file,
// the existing project file, or a new .bigo.yaml.
func targetPath() (string, error) {
	if configGlobal {
		return config.GlobalConfigPath(), nil
	}
	_, path, err := config.Load(workDir)
	if err != nil {
		return "", exitError(ExitError, "bigo: loading project config: %v", err)
	}
	return projectPath(path), nil
}

func projectPath(found string) string {
	if found != "" {
		return found
	}
	return filepath.Join(workDir, config.FileName)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	global, err := config.LoadGlobal()
	if err != nil {
		return exitError(ExitError, "bigo: loading global config: %v", err)
	}
	project, _, err := config.Load(workDir)
	if err != nil {
		return exitError(ExitError, "bigo: loading project config: %v", err)
	}

	globalMap, err := config.Flatten(global)
	if err != nil {
		return fail(err)
	}
	projectMap, err := config.Flatten(project)
	if err != nil {
		return fail(err)
	}

	type entry struct {
		value  any
		source string
	}
	seen := make(map[string]entry)
	for k, v := range globalMap {
		seen[k] = entry{value: v, source: "global"}
	}
	for k, v := range projectMap {
		seen[k] = entry{value: v, source: "project"}
	}

	if len(seen) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'bigo config set <key> <value>' to set values, or 'bigo config show' to see the defaults.")
		return nil
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	globalColor := color.New(color.FgCyan)
	projectColor := color.New(color.FgGreen)
	for _, k := range keys {
		e := seen[k]
		label := projectColor.Sprint("(project)")
		if e.source == "global" {
			label = globalColor.Sprint("(global)")
		}
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, e.value, label)
	}
	return nil
}
