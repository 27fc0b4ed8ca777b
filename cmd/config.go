package cmd

import (
	"fmt"
	"text/tabwriter"

	"audio-converter/infrastructure/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration entries",
	Long: `Show the effective configuration and manage summary email recipients.

Examples:
  audio-converter config show
  audio-converter config list
  audio-converter config add --name "Jane Doe" --email jane@example.com
  audio-converter config remove jane@example.com`,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configAddCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configRemoveCmd)
}

// --- SHOW command ---

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Print the configuration after defaults and AUDIO_CONVERTER_* overrides are applied.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunConfigShowWithDependencies(cfg, DefaultOutput)
	},
}

// RunConfigShowWithDependencies prints cfg as YAML
func RunConfigShowWithDependencies(cfg *config.Config, out OutputWriter) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// --- ADD command ---

var (
	addName  string
	addEmail string
)

var configAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a summary email recipient",
	Args:  cobra.NoArgs,
	RunE:  runConfigAdd,
}

func init() {
	configAddCmd.Flags().StringVar(&addName, "name", "", "Display name (required)")
	configAddCmd.Flags().StringVar(&addEmail, "email", "", "Email address (required)")
	configAddCmd.MarkFlagRequired("name")
	configAddCmd.MarkFlagRequired("email")
}

func runConfigAdd(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	return RunConfigAddWithDependencies(cfg, cfgFile, addName, addEmail, DefaultOutput)
}

// RunConfigAddWithDependencies runs the add command with injected dependencies
func RunConfigAddWithDependencies(cfg *config.Config, configPath, name, email string, out OutputWriter) error {
	mgr := config.NewConfigManager(cfg, configPath)
	if err := mgr.AddRecipient(name, email); err != nil {
		return err
	}
	fmt.Fprintf(out, "Added recipient %s <%s>\n", name, email)
	return nil
}

// --- LIST command ---

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List summary email recipients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunConfigListWithDependencies(cfg, cfgFile, DefaultOutput)
	},
}

// RunConfigListWithDependencies runs the list command with injected dependencies
func RunConfigListWithDependencies(cfg *config.Config, configPath string, out OutputWriter) error {
	recipients := config.NewConfigManager(cfg, configPath).ListRecipients()
	if len(recipients) == 0 {
		fmt.Fprintln(out, "No recipients configured.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL")
	for _, r := range recipients {
		fmt.Fprintf(w, "%s\t%s\n", r.Name, r.Address)
	}
	return w.Flush()
}

// --- REMOVE command ---

var configRemoveCmd = &cobra.Command{
	Use:   "remove <email>",
	Short: "Remove a summary email recipient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		return RunConfigRemoveWithDependencies(cfg, cfgFile, args[0], DefaultOutput)
	},
}

// RunConfigRemoveWithDependencies runs the remove command with injected dependencies
func RunConfigRemoveWithDependencies(cfg *config.Config, configPath, email string, out OutputWriter) error {
	if err := config.NewConfigManager(cfg, configPath).RemoveRecipient(email); err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed recipient %s\n", email)
	return nil
}
