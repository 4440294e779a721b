package cli

import (
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/srt2anki/internal/dictionary"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	OutputDir  string
	DeckName   string
	LogLevel   string
	ListModels bool

	// Lookup flags
	Workers         int
	Dictionary      string
	JishoURL        string
	Timeout         time.Duration
	BreakerFailures int

	// Tokenizer flags
	KanaWords bool
	BaseForm  bool

	// Output flags
	Dedupe   bool
	CSV      bool
	Summary  bool
	Progress bool
	Archive  bool

	// Chat model flags
	OpenAIModel string
	GeminiModel string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		OutputDir:   ".",
		LogLevel:    "info",
		Workers:     20,
		Dictionary:  "jisho",
		JishoURL:    dictionary.DefaultJishoURL,
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: dictionary.DefaultGeminiModel,
	}
}

// LoadFromViper fills flags from viper, so that values from the environment
// and the config file apply to flags not given on the command line
func (f *Flags) LoadFromViper() {
	f.OutputDir = viper.GetString("output.directory")
	f.DeckName = viper.GetString("deck.name")
	f.LogLevel = viper.GetString("log.level")
	f.Workers = viper.GetInt("lookup.workers")
	f.Dictionary = viper.GetString("lookup.dictionary")
	f.JishoURL = viper.GetString("lookup.jisho_url")
	f.Timeout = viper.GetDuration("lookup.timeout")
	f.BreakerFailures = viper.GetInt("lookup.breaker_failures")
	f.KanaWords = viper.GetBool("tokenize.kana_words")
	f.BaseForm = viper.GetBool("tokenize.base_form")
	f.CSV = viper.GetBool("output.csv")
	f.Dedupe = viper.GetBool("output.dedupe")
	f.Summary = viper.GetBool("output.summary")
	f.Progress = viper.GetBool("output.progress")
	f.Archive = viper.GetBool("output.archive")
	f.OpenAIModel = viper.GetString("openai.model")
	f.GeminiModel = viper.GetString("gemini.model")
}
