package baits_api

import (
	"os"
	"strings"

	"github.com/carbocation/pfx"
	cli "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

// The struct representing the run configuration
// It is built once from the YAML file and the command line and only read afterwards
type Config struct {
	// The input table (Stacks summary statistics or annotation)
	Input string `yaml:"input"`

	// The output directory
	Outdir string `yaml:"outdir"`

	// The prefix of all output files
	Outprefix string `yaml:"outprefix"`

	// The template used to build output paths
	// Supports $OUTDIR, $PREFIX, $TAG and $EXT
	OutputTemplate string `yaml:"output_template"`

	// The reference sequence (FASTA or FASTQ)
	Refseq string `yaml:"refseq"`

	// The significance level of the HWE test
	// Must be one of 0.1, 0.05, 0.025 or 0.01
	Alpha float64 `yaml:"alpha"`

	// The distance unit used to scale and space selected SNPs
	Distance int `yaml:"distance"`

	// Sort SNPs into within- and between-population variation
	Sort bool `yaml:"sort"`

	// Sort within-population SNPs into in- and out-of-HWE
	HWE bool `yaml:"hwe"`

	// Keep every SNP instead of spacing them by Distance
	Every bool `yaml:"every"`

	// Only classify and select, don't generate baits
	NoBaits bool `yaml:"no_baits"`

	// Write a run log
	Log bool `yaml:"log"`

	// Bases added on both sides of annotated regions
	Pad int `yaml:"pad"`

	// The annotation features to extract, all features when empty
	Features []string `yaml:"features"`

	// How to build baits
	Bait BaitConfig `yaml:"bait"`

	// How to filter baits
	Filters FilterConfig `yaml:"filters"`
}

// The struct representing the bait layout
type BaitConfig struct {
	// The length of each bait
	Length int `yaml:"length"`

	// For SNP baits the bases before the SNP, for tiled baits the step between baits
	// -1 selects half the bait length
	Offset int `yaml:"offset"`
}

// The struct representing the bait filters
type FilterConfig struct {
	// Remove baits shorter than the bait length
	Complete bool `yaml:"complete"`

	// Remove baits containing Ns
	NoNs bool `yaml:"no_ns"`

	// GC content bounds in percent
	GCMin float64 `yaml:"gc_min"`
	GCMax float64 `yaml:"gc_max"`

	// The maximum percentage of soft-masked bases
	MaxMask float64 `yaml:"max_mask"`

	// The minimum mean Phred quality, only used with FASTQ references
	MinQuality float64 `yaml:"min_quality"`
}

// Read the configuration file and the command line into a validated Config
func ReadConfig(Cctx *cli.Context) (Config, error) {
	config := DefaultConfig()

	if file := Cctx.String("config"); file != "" {
		if err := config.readFile(file); err != nil {
			return config, err
		}
	}

	config.overlay(Cctx)
	config.defineMissing()

	return config, config.Validate(Cctx.Command.Name)
}

// The config file is unmarshalled over the defaults, so only the options it names change
func (config *Config) readFile(file string) error {
	configFile, err := os.ReadFile(file)
	if err != nil {
		return pfx.Err(err)
	}

	if err := yaml.Unmarshal(configFile, config); err != nil {
		return &ConfigError{Option: "config", Reason: err.Error()}
	}

	return nil
}

// Flags given on the command line take precedence over the config file
func (config *Config) overlay(Cctx *cli.Context) {
	overlayString(Cctx, "input", &config.Input)
	overlayString(Cctx, "outdir", &config.Outdir)
	overlayString(Cctx, "outprefix", &config.Outprefix)
	overlayString(Cctx, "output-template", &config.OutputTemplate)
	overlayString(Cctx, "refseq", &config.Refseq)
	if Cctx.IsSet("alpha") {
		config.Alpha = Cctx.Float64("alpha")
	}
	overlayInt(Cctx, "distance", &config.Distance)
	overlayBool(Cctx, "sort", &config.Sort)
	overlayBool(Cctx, "hwe", &config.HWE)
	overlayBool(Cctx, "every", &config.Every)
	overlayBool(Cctx, "no-baits", &config.NoBaits)
	overlayBool(Cctx, "log", &config.Log)
	overlayInt(Cctx, "pad", &config.Pad)
	if Cctx.IsSet("features") {
		config.Features = Cctx.StringSlice("features")
	}

	overlayInt(Cctx, "length", &config.Bait.Length)
	overlayInt(Cctx, "offset", &config.Bait.Offset)

	overlayBool(Cctx, "complete", &config.Filters.Complete)
	overlayBool(Cctx, "no-ns", &config.Filters.NoNs)
	if Cctx.IsSet("gc-min") {
		config.Filters.GCMin = Cctx.Float64("gc-min")
	}
	if Cctx.IsSet("gc-max") {
		config.Filters.GCMax = Cctx.Float64("gc-max")
	}
	if Cctx.IsSet("max-mask") {
		config.Filters.MaxMask = Cctx.Float64("max-mask")
	}
	if Cctx.IsSet("min-quality") {
		config.Filters.MinQuality = Cctx.Float64("min-quality")
	}
}

func overlayString(Cctx *cli.Context, name string, dst *string) {
	if Cctx.IsSet(name) {
		*dst = Cctx.String(name)
	}
}

func overlayInt(Cctx *cli.Context, name string, dst *int) {
	if Cctx.IsSet(name) {
		*dst = Cctx.Int(name)
	}
}

func overlayBool(Cctx *cli.Context, name string, dst *bool) {
	if Cctx.IsSet(name) {
		*dst = Cctx.Bool(name)
	}
}

// The offset used when none is given, replaced by half the bait length
const offsetHalfLength = -1

// DefaultConfig returns the configuration used for every option that is not given
func DefaultConfig() Config {
	return Config{
		Outdir:         ".",
		Outprefix:      "out",
		OutputTemplate: "$OUTDIR/$PREFIX$TAG$EXT",
		Alpha:          0.05,
		Distance:       10000,
		Bait: BaitConfig{
			Length: 120,
			Offset: offsetHalfLength,
		},
		Filters: FilterConfig{
			GCMax:   100,
			MaxMask: 100,
		},
	}
}

// Define all fields that depend on other options
func (config *Config) defineMissing() {
	if config.Bait.Offset == offsetHalfLength {
		config.Bait.Offset = config.Bait.Length / 2
	}
	for i, feature := range config.Features {
		config.Features[i] = strings.TrimSpace(feature)
	}
}

// Validate checks the configuration for the given command before any input is read
func (config Config) Validate(command string) error {
	if config.Input == "" {
		return &ConfigError{Option: "input", Reason: "no input file given"}
	}
	if _, err := CriticalValue(config.Alpha); err != nil {
		return err
	}
	if config.Distance <= 0 {
		return &ConfigError{Option: "distance", Reason: "must be a positive number of bases"}
	}
	if config.HWE && !config.Sort {
		return &ConfigError{Option: "hwe", Reason: "HWE sorting requires within/between population sorting (--sort)"}
	}
	if config.Refseq == "" && (command == "annot2baits" || !config.NoBaits) {
		return &ConfigError{Option: "refseq", Reason: "a reference sequence is required to generate baits"}
	}
	if config.Bait.Length <= 0 {
		return &ConfigError{Option: "length", Reason: "must be positive"}
	}
	if config.Bait.Offset < 0 {
		return &ConfigError{Option: "offset", Reason: "must not be negative"}
	}
	if command == "stacks2baits" && config.Bait.Offset >= config.Bait.Length {
		return &ConfigError{Option: "offset", Reason: "the SNP must lie within the bait, offset must be smaller than the bait length"}
	}
	if !strings.Contains(config.OutputTemplate, "$TAG") {
		return &ConfigError{Option: "output-template", Reason: "must contain $TAG, otherwise all outputs are written to the same file"}
	}
	if config.Pad < 0 {
		return &ConfigError{Option: "pad", Reason: "must not be negative"}
	}
	if config.Filters.GCMin < 0 || config.Filters.GCMax > 100 || config.Filters.GCMin > config.Filters.GCMax {
		return &ConfigError{Option: "gc-min/gc-max", Reason: "must satisfy 0 <= gc-min <= gc-max <= 100"}
	}
	if config.Filters.MaxMask < 0 || config.Filters.MaxMask > 100 {
		return &ConfigError{Option: "max-mask", Reason: "must be between 0 and 100"}
	}
	return nil
}
