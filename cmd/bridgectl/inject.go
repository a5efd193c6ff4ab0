package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var injectFlags struct {
	platform string
	text     string
	textFile string
	out      string
}

var injectCmd = &cobra.Command{
	Use:   "inject <page.html>",
	Short: "Write text into a chat page's input field",
	Long: `inject loads a saved chat page, fills the platform's input field with
the given text and writes the modified page back out. The text comes from
--text, --text-file, or stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := parsePlatform(injectFlags.platform)
		if err != nil {
			return err
		}
		text, err := injectText(cmd.InOrStdin())
		if err != nil {
			return err
		}
		doc, err := loadDoc(args[0])
		if err != nil {
			return err
		}

		if err := newService().Inject(doc, p, text); err != nil {
			return err
		}

		html, err := doc.Html()
		if err != nil {
			return fmt.Errorf("serialize page: %w", err)
		}
		if injectFlags.out == "" || injectFlags.out == "-" {
			fmt.Fprint(cmd.OutOrStdout(), html)
			return nil
		}
		return os.WriteFile(injectFlags.out, []byte(html), 0o644)
	},
}

func injectText(stdin io.Reader) (string, error) {
	switch {
	case injectFlags.text != "" && injectFlags.textFile != "":
		return "", fmt.Errorf("use either --text or --text-file, not both")
	case injectFlags.text != "":
		return injectFlags.text, nil
	case injectFlags.textFile != "":
		b, err := os.ReadFile(injectFlags.textFile)
		if err != nil {
			return "", fmt.Errorf("read text file: %w", err)
		}
		return string(b), nil
	default:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		if len(b) == 0 {
			return "", fmt.Errorf("no text to inject")
		}
		return string(b), nil
	}
}

func init() {
	injectCmd.Flags().StringVar(&injectFlags.platform, "platform", "", "target platform (required)")
	injectCmd.MarkFlagRequired("platform")
	injectCmd.Flags().StringVar(&injectFlags.text, "text", "", "text to inject")
	injectCmd.Flags().StringVar(&injectFlags.textFile, "text-file", "", "file holding the text to inject")
	injectCmd.Flags().StringVar(&injectFlags.out, "out", "", "write the modified page here instead of stdout")
	rootCmd.AddCommand(injectCmd)
}
