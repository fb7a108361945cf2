package common

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. CVX_SOURCE_DIR.
const EnvPrefix = "CVX"

// DefaultReportBase names the report written to the working directory when no path is given.
const DefaultReportBase = "cv_extracted_results"

// Output formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Config holds all application configuration
type Config struct {
	Source     SourceConfig
	Extraction ExtractionConfig
	OCR        OCRConfig
	Output     OutputConfig
	Batch      BatchConfig
	Store      StoreConfig
	Watch      WatchConfig
	Server     ServerConfig
	Log        LogConfig
}

// SourceConfig describes the document collection
type SourceConfig struct {
	Dir        string
	Extensions []string
	Recursive  bool
}

// ExtractionConfig holds the field-extraction policy flags
type ExtractionConfig struct {
	MajorStrategy string
	// AssumeDegree prefixes bare major phrases with DefaultDegree.
	AssumeDegree  bool
	DefaultDegree string
	TruncateName  bool
	MaxNameTokens int
}

// OCRConfig holds text-acquisition configuration
type OCRConfig struct {
	Enabled     bool
	Languages   string
	DPI         int
	MaxPages    int
	Pdftotext   string
	Pdftoppm    string
	Tesseract   string
	TessdataDir string
	Timeout     time.Duration
}

// OutputConfig holds report configuration
type OutputConfig struct {
	Path   string
	Format string
}

// BatchConfig holds batch concurrency settings
type BatchConfig struct {
	Workers int
}

// StoreConfig holds result-store configuration. An empty DSN disables persistence.
type StoreConfig struct {
	DSN      string
	MaxConns int32
}

// WatchConfig holds inbox-watcher configuration
type WatchConfig struct {
	Inbox          string
	InitialScan    bool
	QueueSize      int
	ProcessTimeout time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// NewViper returns a viper instance with defaults and CVX_* environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("source.dir", "cv")
	v.SetDefault("source.extensions", []string{"pdf"})
	v.SetDefault("source.recursive", true)

	v.SetDefault("extraction.major_strategy", "degree")
	v.SetDefault("extraction.assume_degree", true)
	v.SetDefault("extraction.default_degree", "S1")
	v.SetDefault("extraction.truncate_name", true)
	v.SetDefault("extraction.max_name_tokens", 6)

	v.SetDefault("ocr.enabled", true)
	v.SetDefault("ocr.languages", "eng+ind")
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.max_pages", 0)
	v.SetDefault("ocr.pdftotext", "pdftotext")
	v.SetDefault("ocr.pdftoppm", "pdftoppm")
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.tessdata_dir", "")
	v.SetDefault("ocr.timeout", time.Duration(0))

	v.SetDefault("output.path", "")
	v.SetDefault("output.format", FormatXLSX)

	v.SetDefault("batch.workers", 1)

	v.SetDefault("store.dsn", "")
	v.SetDefault("store.max_conns", 4)

	v.SetDefault("watch.inbox", "inbox")
	v.SetDefault("watch.initial_scan", true)
	v.SetDefault("watch.queue_size", 100)
	v.SetDefault("watch.process_timeout", 5*time.Minute)

	v.SetDefault("server.grpc_addr", ":8080")
	v.SetDefault("log.level", "info")
	return v
}

// flagKeys maps command-line flag names to viper keys.
var flagKeys = map[string]string{
	"dir":            "source.dir",
	"ext":            "source.extensions",
	"recursive":      "source.recursive",
	"major-strategy": "extraction.major_strategy",
	"assume-degree":  "extraction.assume_degree",
	"default-degree": "extraction.default_degree",
	"truncate-name":  "extraction.truncate_name",
	"ocr":            "ocr.enabled",
	"ocr-lang":       "ocr.languages",
	"ocr-dpi":        "ocr.dpi",
	"out":            "output.path",
	"format":         "output.format",
	"workers":        "batch.workers",
	"store":          "store.dsn",
	"inbox":          "watch.inbox",
	"grpc-addr":      "server.grpc_addr",
	"loglevel":       "log.level",
}

// DefineFlags registers the shared command-line flags on fs and binds the
// ones present into v. Commands may skip flags they do not expose.
func DefineFlags(fs *pflag.FlagSet, v *viper.Viper) {
	fs.String("dir", v.GetString("source.dir"), "Directory containing CV files")
	fs.StringSlice("ext", v.GetStringSlice("source.extensions"), "Eligible file extensions")
	fs.Bool("recursive", v.GetBool("source.recursive"), "Descend into subdirectories")
	fs.String("major-strategy", v.GetString("extraction.major_strategy"), "Major extraction strategy: degree or label")
	fs.Bool("assume-degree", v.GetBool("extraction.assume_degree"), "Prefix bare majors with the default degree")
	fs.String("default-degree", v.GetString("extraction.default_degree"), "Degree assumed for bare majors")
	fs.Bool("truncate-name", v.GetBool("extraction.truncate_name"), "Cut filename-derived names at the first delimiter")
	fs.Bool("ocr", v.GetBool("ocr.enabled"), "Fall back to OCR when a PDF has no text layer")
	fs.String("ocr-lang", v.GetString("ocr.languages"), "Tesseract languages")
	fs.Int("ocr-dpi", v.GetInt("ocr.dpi"), "Rasterization DPI for OCR")
	fs.String("out", v.GetString("output.path"), "Report path (default: "+DefaultReportBase+".<format>)")
	fs.String("format", v.GetString("output.format"), "Report format: xlsx, csv or json")
	fs.Int("workers", v.GetInt("batch.workers"), "Concurrent documents (1 = sequential)")
	fs.String("store", v.GetString("store.dsn"), "Result store DSN (sqlite path or postgres URL)")
	fs.String("inbox", v.GetString("watch.inbox"), "Inbox directory watched by the daemon")
	fs.String("grpc-addr", v.GetString("server.grpc_addr"), "gRPC health listen address")
	fs.String("loglevel", v.GetString("log.level"), "Log level (debug, info, warn, error)")

	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// Load populates a Config from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Source: SourceConfig{
			Dir:        v.GetString("source.dir"),
			Extensions: v.GetStringSlice("source.extensions"),
			Recursive:  v.GetBool("source.recursive"),
		},
		Extraction: ExtractionConfig{
			MajorStrategy: strings.ToLower(v.GetString("extraction.major_strategy")),
			AssumeDegree:  v.GetBool("extraction.assume_degree"),
			DefaultDegree: strings.ToUpper(v.GetString("extraction.default_degree")),
			TruncateName:  v.GetBool("extraction.truncate_name"),
			MaxNameTokens: v.GetInt("extraction.max_name_tokens"),
		},
		OCR: OCRConfig{
			Enabled:     v.GetBool("ocr.enabled"),
			Languages:   v.GetString("ocr.languages"),
			DPI:         v.GetInt("ocr.dpi"),
			MaxPages:    v.GetInt("ocr.max_pages"),
			Pdftotext:   v.GetString("ocr.pdftotext"),
			Pdftoppm:    v.GetString("ocr.pdftoppm"),
			Tesseract:   v.GetString("ocr.tesseract"),
			TessdataDir: v.GetString("ocr.tessdata_dir"),
			Timeout:     v.GetDuration("ocr.timeout"),
		},
		Output: OutputConfig{
			Path:   v.GetString("output.path"),
			Format: strings.ToLower(v.GetString("output.format")),
		},
		Batch: BatchConfig{
			Workers: v.GetInt("batch.workers"),
		},
		Store: StoreConfig{
			DSN:      v.GetString("store.dsn"),
			MaxConns: v.GetInt32("store.max_conns"),
		},
		Watch: WatchConfig{
			Inbox:          v.GetString("watch.inbox"),
			InitialScan:    v.GetBool("watch.initial_scan"),
			QueueSize:      v.GetInt("watch.queue_size"),
			ProcessTimeout: v.GetDuration("watch.process_timeout"),
		},
		Server: ServerConfig{
			GRPCAddr: v.GetString("server.grpc_addr"),
		},
		Log: LogConfig{
			Level: strings.ToLower(v.GetString("log.level")),
		},
	}

	if cfg.Output.Path == "" {
		cfg.Output.Path = DefaultReportBase + "." + cfg.Output.Format
	}

	if err := cfg.Validate(); err != nil {
		return nil, NewAppError(CodeConfig, "invalid configuration", err)
	}
	return cfg, nil
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("source.dir", c.Source.Dir, Required)
	v.Field("source.extensions", c.Source.Extensions, Required)
	v.Field("extraction.major_strategy", c.Extraction.MajorStrategy, OneOf("degree", "label"))
	if c.Extraction.AssumeDegree {
		v.Field("extraction.default_degree", c.Extraction.DefaultDegree, Required)
	}
	v.Field("extraction.max_name_tokens", c.Extraction.MaxNameTokens, IntBetween(1, 20))
	v.Field("ocr.dpi", c.OCR.DPI, IntBetween(72, 1200))
	v.Field("output.format", c.Output.Format, OneOf(FormatXLSX, FormatCSV, FormatJSON))
	v.Field("batch.workers", c.Batch.Workers, IntBetween(1, 64))
	v.Field("log.level", c.Log.Level, OneOf("debug", "info", "warn", "error"))
	return v.Error()
}

// SlogLevel maps the configured level onto slog, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
