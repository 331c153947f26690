package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/assistant"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/settings"
)

var (
	iconsProvider string
	iconsSource   string
)

var iconsCmd = &cobra.Command{
	Use:   "icons [context]",
	Short: "Find icon search keywords with the icon finder assistant",
	Long: `Ask the icon finder assistant for keywords to search icon websites
with. The context is read from the arguments, or from stdin.

Examples:
  ai-studio icons --provider work --source FONT_AWESOME "Button that exports a report as PDF"`,
	RunE: runIcons,
}

func init() {
	var sources []string
	for _, s := range settings.AllIconSources() {
		sources = append(sources, string(s))
	}
	iconsCmd.Flags().StringVarP(&iconsProvider, "provider", "p", "", "Provider id, instance name or number")
	iconsCmd.Flags().StringVarP(&iconsSource, "source", "s", "", "Icon source ("+strings.Join(sources, "|")+")")
}

func runIcons(cmd *cobra.Command, args []string) error {
	text, err := inputText(args)
	if err != nil {
		return err
	}

	printer := &streamPrinter{out: cmd.OutOrStdout()}
	finder := assistant.NewIconFinder(current.settings,
		assistant.WithLogger(current.logger),
		assistant.WithMessageBus(current.bus),
		assistant.WithStateObserver(printer.update),
	)
	printer.text = finder.Result2Copy
	finder.Initialize()

	if iconsProvider != "" {
		config, err := providerArg(iconsProvider)
		if err != nil {
			return err
		}
		finder.SetProvider(config)
	}
	if iconsSource != "" {
		finder.SetIconSource(settings.IconSource(strings.ToUpper(iconsSource)))
	}
	finder.SetContext(text)

	if _, err := finder.FindIcon(cmd.Context()); err != nil {
		return reportIssues(err, finder.InputIssues())
	}
	printer.update()
	fmt.Fprintln(cmd.OutOrStdout())

	if url := finder.IconSource().URL(); url != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSearch on %s: %s\n", finder.IconSource().Name(), url)
	}
	return nil
}
