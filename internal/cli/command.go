package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/srt2anki/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "srt2anki <subtitle-file>",
		Short: "Japanese Anki Deck Generator for Subtitles",
		Long: `srt2anki turns the Japanese dialogue of an SRT subtitle file into an
Anki deck.

It tokenizes the dialogue, looks every kanji word up on jisho.org (or asks
an OpenAI or Gemini chat model) and writes one card per word with the
reading and English meanings on the back.

Examples:
  srt2anki episode01.srt --name "Episode 1"
  srt2anki episode01.srt --name ep1 --output-dir decks --summary
  srt2anki --list-models`,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.ListModels {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.srt2anki.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.DeckName, "name", "", "Deck name, also the output file name (required)")
	cmd.Flags().StringVarP(&flags.OutputDir, "output-dir", "o", flags.OutputDir, "Output directory")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn or error")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List chat models usable with --dictionary openai or gemini")

	// Lookup flags
	cmd.Flags().IntVarP(&flags.Workers, "workers", "w", flags.Workers, "Number of parallel dictionary lookups")
	cmd.Flags().StringVar(&flags.Dictionary, "dictionary", flags.Dictionary, "Dictionary backend: jisho, openai or gemini")
	cmd.Flags().StringVar(&flags.JishoURL, "jisho-url", flags.JishoURL, "Jisho word search endpoint")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-lookup timeout (0 waits forever)")
	cmd.Flags().IntVar(&flags.BreakerFailures, "breaker-failures", 0, "Stop looking up after this many consecutive service failures (0 disables)")

	// Tokenizer flags
	cmd.Flags().BoolVar(&flags.KanaWords, "kana-words", false, "Also look up words written only in kana")
	cmd.Flags().BoolVar(&flags.BaseForm, "base-form", false, "Look up the dictionary form of inflected words")

	// Output flags
	cmd.Flags().BoolVar(&flags.Dedupe, "dedupe", false, "Keep only the first card for each word")
	cmd.Flags().BoolVar(&flags.CSV, "csv", false, "Also write a CSV file for Anki's text import")
	cmd.Flags().BoolVar(&flags.Summary, "summary", false, "Print a table of every looked up word")
	cmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar while looking up words")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move an existing deck with the same name to the archive directory first")

	// Chat model flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model for --dictionary openai")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for --dictionary gemini")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("deck.name", cmd.Flags().Lookup("name"))
	viper.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	viper.BindPFlag("lookup.workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("lookup.dictionary", cmd.Flags().Lookup("dictionary"))
	viper.BindPFlag("lookup.jisho_url", cmd.Flags().Lookup("jisho-url"))
	viper.BindPFlag("lookup.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("lookup.breaker_failures", cmd.Flags().Lookup("breaker-failures"))
	viper.BindPFlag("tokenize.kana_words", cmd.Flags().Lookup("kana-words"))
	viper.BindPFlag("tokenize.base_form", cmd.Flags().Lookup("base-form"))
	viper.BindPFlag("output.csv", cmd.Flags().Lookup("csv"))
	viper.BindPFlag("output.dedupe", cmd.Flags().Lookup("dedupe"))
	viper.BindPFlag("output.summary", cmd.Flags().Lookup("summary"))
	viper.BindPFlag("output.progress", cmd.Flags().Lookup("progress"))
	viper.BindPFlag("output.archive", cmd.Flags().Lookup("archive"))
	viper.BindPFlag("openai.model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("gemini.model", cmd.Flags().Lookup("gemini-model"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".srt2anki" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".srt2anki")
	}

	// Environment variables, e.g. SRT2ANKI_LOOKUP_WORKERS for lookup.workers
	viper.SetEnvPrefix("SRT2ANKI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Validate checks flag combinations that cobra cannot express
func (f *Flags) Validate() error {
	if f.ListModels {
		return nil
	}
	if strings.TrimSpace(f.DeckName) == "" {
		return fmt.Errorf(`required flag(s) "name" not set`)
	}
	if strings.ContainsAny(f.DeckName, `/\`) {
		return fmt.Errorf("deck name must not contain path separators: %q", f.DeckName)
	}
	if f.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", f.Workers)
	}
	if f.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", f.Timeout)
	}
	if f.BreakerFailures < 0 {
		return fmt.Errorf("breaker-failures must not be negative, got %d", f.BreakerFailures)
	}
	switch f.Dictionary {
	case "jisho", "openai", "gemini":
	default:
		return fmt.Errorf("unknown dictionary %q (want jisho, openai or gemini)", f.Dictionary)
	}
	return nil
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("openai.key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("gemini.key")
}
