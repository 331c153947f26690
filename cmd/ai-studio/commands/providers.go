package commands

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/confidence"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/factory"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/providers/common"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/settings"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

var (
	addType      string
	addInstance  string
	addModel     string
	addHostname  string
	addHost      string
	addAPIKeyEnv string
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Manage configured providers",
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured providers",
	RunE:  runProvidersList,
}

var providersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a provider",
	Long: `Add a provider entry to the settings file.

Examples:
  ai-studio providers add --type openai --instance work --model gpt-4o
  ai-studio providers add --type self_hosted --instance local \
      --hostname http://localhost:11434 --host ollama --model llama3`,
	RunE: runProvidersAdd,
}

var providersRemoveCmd = &cobra.Command{
	Use:   "remove <id|instance|num>",
	Short: "Remove a provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersRemove,
}

func init() {
	providersAddCmd.Flags().StringVar(&addType, "type", "", "Provider type ("+providerTypeList()+")")
	providersAddCmd.Flags().StringVar(&addInstance, "instance", "", "Instance name")
	providersAddCmd.Flags().StringVar(&addModel, "model", "", "Model id")
	providersAddCmd.Flags().StringVar(&addHostname, "hostname", "", "Self-hosted server URL")
	providersAddCmd.Flags().StringVar(&addHost, "host", string(types.HostLMStudio), "Self-hosted server kind (lm_studio|llama_cpp|ollama)")
	providersAddCmd.Flags().StringVar(&addAPIKeyEnv, "api-key-env", "", "Environment variable holding the API key")

	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersAddCmd)
	providersCmd.AddCommand(providersRemoveCmd)
}

func providerTypeList() string {
	names := make([]string, 0, len(types.AllProviderTypes()))
	for _, t := range types.AllProviderTypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, "|")
}

func runProvidersList(cmd *cobra.Command, args []string) error {
	data := current.settings.Snapshot()
	if len(data.Providers) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No providers configured. Add one with 'ai-studio providers add'.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NUM\tINSTANCE\tPROVIDER\tMODEL\tHOST\tCONFIDENCE\tID\t")
	for _, p := range data.Providers {
		host := "-"
		if p.Type == types.ProviderTypeSelfHosted {
			host = p.Host.Name() + " @ " + p.Hostname
		}
		level := confidence.GetFor(p.Type, current.settings).Level
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			p.Num, p.InstanceName, p.Type.Name(), p.Model, host, levelColor(level).Sprint(level.Name()), p.ID)
	}
	return w.Flush()
}

func runProvidersAdd(cmd *cobra.Command, args []string) error {
	config := types.ProviderConfig{
		InstanceName: addInstance,
		Type:         types.ProviderType(addType),
		Model:        types.NewModel(addModel),
		APIKeyEnv:    addAPIKeyEnv,
	}
	if config.Type == types.ProviderTypeSelfHosted {
		config.IsSelfHosted = true
		config.Hostname = addHostname
		config.Host = types.Host(addHost)
	}

	if issues := factory.ValidateProviderConfig(config); len(issues) > 0 {
		return reportIssues(errors.New("invalid provider configuration"), issues)
	}

	current.logger.Debug("Adding provider", "config", common.NewConfigHelper(config.Type).SanitizeConfigForLogging(config))
	added, err := current.settings.AddProvider(config)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added provider #%d %q (%s)\n", added.Num, added.InstanceName, added.ID)
	return nil
}

func runProvidersRemove(cmd *cobra.Command, args []string) error {
	config, err := providerArg(args[0])
	if err != nil {
		return err
	}
	if err := current.settings.RemoveProvider(config.ID); err != nil {
		if errors.Is(err, settings.ErrProviderNotFound) {
			return fmt.Errorf("provider %s was removed concurrently", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed provider %q\n", config.InstanceName)
	return nil
}
