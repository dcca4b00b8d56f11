package types

// FAQPolicy selects the heuristic used to recognise FAQ question paragraphs.
// Exactly one heuristic is active per conversion.
type FAQPolicy string

const (
	// FAQPolicyBold treats a paragraph as a question when all of its
	// non-blank runs are bold (a leading numeric run is ignored).
	FAQPolicyBold FAQPolicy = "bold"

	// FAQPolicyNumbered treats a paragraph as a question when its trimmed
	// text starts with an integer, a period and whitespace ("1. ").
	FAQPolicyNumbered FAQPolicy = "numbered"
)

// ListPolicy selects how list paragraphs map onto list containers.
type ListPolicy string

const (
	// ListPolicyDistinct keeps ordered and unordered lists apart.
	ListPolicyDistinct ListPolicy = "distinct"

	// ListPolicyCollapse renders every list paragraph as an unordered item.
	ListPolicyCollapse ListPolicy = "collapse"
)

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	// FAQPolicy selects the FAQ question heuristic (default bold).
	FAQPolicy FAQPolicy `json:"faq_policy" yaml:"faq_policy"`

	// ListPolicy selects list kind handling (default distinct).
	ListPolicy ListPolicy `json:"list_policy" yaml:"list_policy"`

	// OutputDir is the directory for generated .html files when no explicit
	// output path is given. Empty means next to the input file.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Standalone wraps the fragment in a full HTML page.
	Standalone bool `json:"standalone" yaml:"standalone"`

	// Force re-converts files whose output already exists.
	Force bool `json:"force" yaml:"force"`
}

// LedgerConfig holds settings for the conversion ledger.
type LedgerConfig struct {
	// Dir is the directory holding docx2html.db and exports.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of listed entries (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error, fatal.
	Level string `json:"level" yaml:"level"`

	// Format is one of json, console, pretty.
	Format string `json:"format" yaml:"format"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Ledger     LedgerConfig     `json:"ledger" yaml:"ledger"`
	Log        LogConfig        `json:"log" yaml:"log"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Conversion: ConversionConfig{
			FAQPolicy:  FAQPolicyBold,
			ListPolicy: ListPolicyDistinct,
		},
		Ledger: LedgerConfig{
			Dir:        ".docx2html",
			MaxResults: 50,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
