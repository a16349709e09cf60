package baits_api

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v2"
)

// Run a command with the given arguments and return the config it read
func runConfig(t *testing.T, command string, args ...string) (Config, error) {
	t.Helper()

	var (
		config Config
		err    error
	)
	flags := StacksFlags()
	if command == "annot2baits" {
		flags = AnnotFlags()
	}
	app := &cli.App{
		Name: "baitstools",
		Commands: []*cli.Command{{
			Name:  command,
			Flags: flags,
			Action: func(Cctx *cli.Context) error {
				config, err = ReadConfig(Cctx)
				return nil
			},
		}},
	}
	if runErr := app.Run(append([]string{"baitstools", command}, args...)); runErr != nil {
		t.Fatal(runErr)
	}
	return config, err
}

func TestReadConfigDefaults(t *testing.T) {
	config, err := runConfig(t, "stacks2baits", "--input", "in.tsv", "--no-baits")
	if err != nil {
		t.Fatal(err)
	}
	if config.Alpha != 0.05 || config.Distance != 10000 || config.Outdir != "." || config.Outprefix != "out" {
		t.Fatalf("unexpected defaults: %+v", config)
	}
	if config.Bait.Length != 120 || config.Bait.Offset != 60 || config.Filters.GCMax != 100 || config.Filters.MaxMask != 100 {
		t.Fatalf("unexpected bait defaults: %+v %+v", config.Bait, config.Filters)
	}
}

func TestReadConfigFileAndFlags(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "input: from-file.tsv\n" +
		"refseq: ref.fa\n" +
		"alpha: 0.01\n" +
		"distance: 500\n" +
		"sort: true\n" +
		"hwe: true\n" +
		"bait:\n  length: 80\n" +
		"filters:\n  gc_min: 30\n  gc_max: 70\n  no_ns: true\n"
	if err := os.WriteFile(file, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := runConfig(t, "stacks2baits", "--config", file, "--input", "from-flag.tsv", "--alpha", "0.025")
	if err != nil {
		t.Fatal(err)
	}
	if config.Input != "from-flag.tsv" || config.Alpha != 0.025 {
		t.Fatalf("flags should take precedence: %+v", config)
	}
	if config.Refseq != "ref.fa" || config.Distance != 500 || !config.Sort || !config.HWE {
		t.Fatalf("config file values lost: %+v", config)
	}
	if config.Bait.Length != 80 || config.Bait.Offset != 40 {
		t.Fatalf("unexpected bait config: %+v", config.Bait)
	}
	if config.Filters.GCMin != 30 || config.Filters.GCMax != 70 || !config.Filters.NoNs {
		t.Fatalf("unexpected filters: %+v", config.Filters)
	}
}

func TestReadConfigAnnotFeatures(t *testing.T) {
	config, err := runConfig(t, "annot2baits", "--input", "a.gff", "--refseq", "ref.fa", "--features", "gene", "--features", " exon ", "--pad", "10")
	if err != nil {
		t.Fatal(err)
	}
	if len(config.Features) != 2 || config.Features[0] != "gene" || config.Features[1] != "exon" || config.Pad != 10 {
		t.Fatalf("unexpected features: %+v", config)
	}
}

func TestReadConfigErrors(t *testing.T) {
	for name, args := range map[string][]string{
		"no input":      {"--no-baits"},
		"hwe only":      {"--input", "in.tsv", "--no-baits", "--hwe"},
		"distance":      {"--input", "in.tsv", "--no-baits", "--distance", "-5"},
		"no reference":  {"--input", "in.tsv"},
		"offset":        {"--input", "in.tsv", "--no-baits", "--length", "10", "--offset", "10"},
		"gc bounds":     {"--input", "in.tsv", "--no-baits", "--gc-min", "70", "--gc-max", "30"},
		"mask":          {"--input", "in.tsv", "--no-baits", "--max-mask", "120"},
		"zero distance": {"--input", "in.tsv", "--no-baits", "--distance", "0"},
		"template":      {"--input", "in.tsv", "--no-baits", "--output-template", "$OUTDIR/$PREFIX$EXT"},
	} {
		_, err := runConfig(t, "stacks2baits", args...)
		var configErr *ConfigError
		if !errors.As(err, &configErr) {
			t.Errorf("%s: expected a ConfigError, got %v", name, err)
		}
	}
}

func TestReadConfigExplicitZeros(t *testing.T) {
	config, err := runConfig(t, "stacks2baits", "--input", "in.tsv", "--no-baits",
		"--gc-max", "0", "--max-mask", "0", "--offset", "0")
	if err != nil {
		t.Fatal(err)
	}
	if config.Filters.GCMax != 0 || config.Filters.MaxMask != 0 || config.Bait.Offset != 0 {
		t.Fatalf("explicit zeros were replaced: %+v %+v", config.Bait, config.Filters)
	}

	// A zero mask limit removes every bait with a soft-masked base
	bait := cutBait(&SequenceRecord{Name: "chr1", Seq: "acGT"}, 1, 4)
	config.Filters.apply(bait, 4)
	if strings.Join(bait.Reasons, ",") != "gc_high,masked" {
		t.Fatalf("reasons %v, expected gc_high and masked", bait.Reasons)
	}
}

func TestReadConfigFileExplicitZeros(t *testing.T) {
	dir := t.TempDir()
	for name, yaml := range map[string]string{
		"alpha":    "input: in.tsv\nno_baits: true\nalpha: 0\n",
		"distance": "input: in.tsv\nno_baits: true\ndistance: 0\n",
		"length":   "input: in.tsv\nno_baits: true\nbait:\n  length: 0\n",
	} {
		file := filepath.Join(dir, name+".yaml")
		if err := os.WriteFile(file, []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := runConfig(t, "stacks2baits", "--config", file)
		var configErr *ConfigError
		if !errors.As(err, &configErr) || configErr.Option != name {
			t.Errorf("%s: expected a ConfigError on %s, got %v", name, name, err)
		}
	}

	file := filepath.Join(dir, "filters.yaml")
	if err := os.WriteFile(file, []byte("input: in.tsv\nno_baits: true\nfilters:\n  gc_max: 0\n  max_mask: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	config, err := runConfig(t, "stacks2baits", "--config", file)
	if err != nil {
		t.Fatal(err)
	}
	if config.Filters.GCMax != 0 || config.Filters.MaxMask != 0 {
		t.Fatalf("explicit zeros were replaced: %+v", config.Filters)
	}
}

func TestValidateUnsupportedAlpha(t *testing.T) {
	config := DefaultConfig()
	config.Input, config.NoBaits, config.Alpha = "in.tsv", true, 0.2
	config.defineMissing()

	var configErr *ConfigError
	if err := config.Validate("stacks2baits"); !errors.As(err, &configErr) || configErr.Option != "alpha" {
		t.Fatalf("expected an alpha ConfigError, got %v", err)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	if _, err := runConfig(t, "stacks2baits", "--config", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
