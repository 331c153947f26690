package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/factory"
)

var modelsCmd = &cobra.Command{
	Use:   "models <provider>",
	Short: "List the text models a configured provider offers",
	Long: `List the text models offered by a configured provider. The provider is
given by id, instance name or number.

Examples:
  ai-studio models work
  ai-studio models 2`,
	Args: cobra.ExactArgs(1),
	RunE: runModels,
}

func runModels(cmd *cobra.Command, args []string) error {
	config, err := providerArg(args[0])
	if err != nil {
		return err
	}

	provider := factory.CreateModelProvider(config, current.logger)
	models, err := provider.GetTextModels(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}
	if len(models) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No models available.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tNAME\t")
	for _, m := range models {
		marker := ""
		if m.ID == config.Model.ID {
			marker = " *"
		}
		fmt.Fprintf(w, "%s%s\t%s\t\n", m.ID, marker, m.Name)
	}
	return w.Flush()
}
