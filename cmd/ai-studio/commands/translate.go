package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/assistant"
	"github.com/cecil-the-coder/ai-studio-kit/pkg/settings"
)

var (
	translateProvider string
	translateTo       string
	translateCustom   string
	translateCopy     bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate text with the translation assistant",
	Long: `Translate text into another language. The text is read from the
arguments, or from stdin when none are given. Without --provider and --to
the translation preselection from the settings is used.

Examples:
  ai-studio translate --provider work --to DE_DE "Good morning"
  cat notes.txt | ai-studio translate --provider work --to OTHER --custom Klingon`,
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().StringVarP(&translateProvider, "provider", "p", "", "Provider id, instance name or number")
	translateCmd.Flags().StringVarP(&translateTo, "to", "t", "", "Target language ("+languageList()+")")
	translateCmd.Flags().StringVar(&translateCustom, "custom", "", "Language name when --to is OTHER")
	translateCmd.Flags().BoolVar(&translateCopy, "copy", false, "Copy the translation to the clipboard")
}

func languageList() string {
	names := make([]string, 0, len(settings.AllLanguages()))
	for _, l := range settings.AllLanguages() {
		names = append(names, string(l))
	}
	return strings.Join(names, "|")
}

// streamPrinter writes only the part of the answer not printed yet.
type streamPrinter struct {
	mu      sync.Mutex
	out     io.Writer
	printed int
	text    func() string
}

func (p *streamPrinter) update() {
	p.mu.Lock()
	defer p.mu.Unlock()
	text := p.text()
	if len(text) > p.printed {
		fmt.Fprint(p.out, text[p.printed:])
		p.printed = len(text)
	}
}

func inputText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func runTranslate(cmd *cobra.Command, args []string) error {
	text, err := inputText(args)
	if err != nil {
		return err
	}

	printer := &streamPrinter{out: cmd.OutOrStdout()}
	tr := assistant.NewTranslation(current.settings,
		assistant.WithLogger(current.logger),
		assistant.WithMessageBus(current.bus),
		assistant.WithStateObserver(printer.update),
	)
	printer.text = tr.Result2Copy
	tr.Initialize()

	if translateProvider != "" {
		config, err := providerArg(translateProvider)
		if err != nil {
			return err
		}
		tr.SetProvider(config)
	}
	if translateTo != "" {
		tr.SetTargetLanguage(settings.CommonLanguage(strings.ToUpper(translateTo)), translateCustom)
	}
	tr.SetLiveTranslation(false)
	tr.SetInputText(cmd.Context(), text)

	if _, err := tr.TranslateText(cmd.Context(), true); err != nil {
		return reportIssues(err, tr.InputIssues())
	}
	printer.update()
	fmt.Fprintln(cmd.OutOrStdout())

	if translateCopy {
		return tr.CopyToClipboard()
	}
	return nil
}
