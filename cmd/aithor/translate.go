package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EgeUnlu35/aithor/internal/api"
	"github.com/EgeUnlu35/aithor/internal/library"
)

var (
	translateLang string
	translateTone string
)

var translateCmd = &cobra.Command{
	Use:   "translate BOOK_ID",
	Short: "Create a translated copy of a local book",
	Long: `Translate creates a translated copy of a local book as a new library
record. The source book is left untouched.

This is a demo pathway: no translation backend is involved, the copy's
chapters carry a translated-content marker in front of the original text.

Supported language codes: en es fr de it pt ru zh ja ko ar hi tr`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, s, err := mustLibrary()
		if err != nil {
			return err
		}
		defer s.Close()

		translated, err := lib.Translate(cmd.Context(), args[0], library.TranslateOptions{
			Language: translateLang,
			Tone:     translateTone,
			OnProgress: func(percent int) {
				fmt.Fprintf(os.Stderr, "\rtranslating to %s... %d%%", library.LanguageName(translateLang), percent)
				if percent == 100 {
					fmt.Fprintln(os.Stderr)
				}
			},
		})
		if err != nil {
			return err
		}
		return api.Output(translated)
	},
}

func init() {
	translateCmd.Flags().StringVar(&translateLang, "lang", "es", "target language code")
	translateCmd.Flags().StringVar(&translateTone, "tone", "", "optional tone, e.g. formal or casual")
	rootCmd.AddCommand(translateCmd)
}
