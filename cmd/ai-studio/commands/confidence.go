package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/confidence"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/types"
)

var confidenceCmd = &cobra.Command{
	Use:   "confidence [provider-type...]",
	Short: "Show how far providers can be trusted",
	Long: `Show the confidence of each provider type under the configured
confidence scheme: data-handling tier, region, trust level and the policy
documents backing them.

Examples:
  ai-studio confidence              # All provider types
  ai-studio confidence mistral      # Only Mistral
  ai-studio confidence --schemes    # Levels under every scheme`,
	RunE: runConfidence,
}

var showSchemes bool

func init() {
	confidenceCmd.Flags().BoolVar(&showSchemes, "schemes", false, "Compare the levels every confidence scheme assigns")
}

func runConfidence(cmd *cobra.Command, args []string) error {
	providerTypes := types.AllProviderTypes()
	if len(args) > 0 {
		providerTypes = providerTypes[:0:0]
		for _, arg := range args {
			providerTypes = append(providerTypes, types.ProviderType(strings.ToLower(arg)))
		}
	}
	if showSchemes {
		return printSchemes(cmd, providerTypes)
	}

	out := cmd.OutOrStdout()
	scheme := current.settings.Snapshot().ConfidenceScheme
	fmt.Fprintf(out, "Scheme: %s\n\n", scheme.Name())

	bold := color.New(color.Bold)
	for _, t := range providerTypes {
		c := confidence.GetFor(t, current.settings)
		fmt.Fprintf(out, "%s  %s\n", bold.Sprint(t.Name()), levelColor(c.Level).Sprint(c.Level.Name()))
		if c.Region != "" {
			fmt.Fprintf(out, "  region: %s\n", c.Region)
		}
		fmt.Fprintf(out, "  tier:   %s\n", c.Tier)
		fmt.Fprintf(out, "  %s\n", c.Description)
		for _, source := range c.Sources() {
			fmt.Fprintf(out, "  %s\n", color.New(color.FgHiBlack).Sprint(source))
		}
		fmt.Fprintln(out)
	}
	return nil
}

// printSchemes prints one row per scheme with the level it assigns to each
// provider type. The configured scheme is marked with an asterisk.
func printSchemes(cmd *cobra.Command, providerTypes []types.ProviderType) error {
	data := current.settings.Snapshot()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "\tSCHEME\t")
	for _, t := range providerTypes {
		if t != types.ProviderTypeNone {
			fmt.Fprintf(w, "%s\t", strings.ToUpper(t.Name()))
		}
	}
	fmt.Fprintln(w)

	for _, scheme := range confidence.AllSchemes() {
		marker := ""
		if scheme == data.ConfidenceScheme {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t", marker, scheme)
		for _, t := range providerTypes {
			if t != types.ProviderTypeNone {
				fmt.Fprintf(w, "%s\t", scheme.Level(t, data.CustomConfidenceLevels).Name())
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// levelColor picks the display color of a confidence level.
func levelColor(level confidence.Level) *color.Color {
	switch {
	case level == confidence.LevelNone:
		return color.New(color.FgHiBlack)
	case level >= confidence.LevelMedium:
		return color.New(color.FgGreen)
	case level >= confidence.LevelLow:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
