package baits_api

import (
	"fmt"
	"slices"
	"strconv"

	cli "github.com/urfave/cli/v2"
)

// Flags shared by all commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    "Configuration file (YAML), command line flags take precedence over it",
			Category: "Optional",
		},
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "The input table",
			Category: "Required",
		},
		&cli.StringFlag{
			Name:     "refseq",
			Aliases:  []string{"r"},
			Usage:    "The reference sequence (FASTA or FASTQ, optionally bgzipped)",
			Category: "Required",
		},
		&cli.StringFlag{
			Name:     "outdir",
			Aliases:  []string{"o"},
			Usage:    "The output directory",
			Category: "Optional",
		},
		&cli.StringFlag{
			Name:     "outprefix",
			Aliases:  []string{"p"},
			Usage:    "The prefix of all output files",
			Category: "Optional",
		},
		&cli.StringFlag{
			Name:     "output-template",
			Usage:    "Template of the output paths, supports $OUTDIR, $PREFIX, $TAG and $EXT",
			Category: "Optional",
		},
		&cli.BoolFlag{
			Name:     "log",
			Usage:    "Write a run log with counts and lengths per stage",
			Category: "Optional",
		},
		&cli.IntFlag{
			Name:        "length",
			Aliases:     []string{"L"},
			Usage:       "The length of the baits",
			DefaultText: "120",
			Category:    "Baits",
		},
		&cli.IntFlag{
			Name:        "offset",
			Aliases:     []string{"O"},
			Usage:       "Bases before the SNP (stacks2baits) or tiling step (annot2baits)",
			DefaultText: "half the bait length",
			Category:    "Baits",
		},
		&cli.BoolFlag{
			Name:     "complete",
			Usage:    "Remove baits shorter than the bait length",
			Category: "Filters",
		},
		&cli.BoolFlag{
			Name:     "no-ns",
			Usage:    "Remove baits containing Ns",
			Category: "Filters",
		},
		&cli.Float64Flag{
			Name:        "gc-min",
			Usage:       "Minimum GC content in percent",
			DefaultText: "0",
			Category:    "Filters",
		},
		&cli.Float64Flag{
			Name:        "gc-max",
			Usage:       "Maximum GC content in percent",
			DefaultText: "100",
			Category:    "Filters",
		},
		&cli.Float64Flag{
			Name:        "max-mask",
			Usage:       "Maximum percentage of soft-masked bases",
			DefaultText: "100",
			Category:    "Filters",
		},
		&cli.Float64Flag{
			Name:        "min-quality",
			Usage:       "Minimum mean Phred quality (FASTQ references only)",
			DefaultText: "0",
			Category:    "Filters",
		},
	}
}

// StacksFlags returns the flags of the stacks2baits command
func StacksFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.Float64Flag{
			Name:        "alpha",
			Aliases:     []string{"a"},
			Usage:       "Significance level of the HWE test. Must be one of: 0.1, 0.05, 0.025, 0.01",
			DefaultText: "0.05",
			Category:    "Sorting",
			Action: func(c *cli.Context, input float64) error {
				if slices.Contains(SupportedAlphas(), input) {
					return nil
				}
				return cli.Exit(fmt.Sprintf("Invalid alpha '%s', must be one of: 0.1, 0.05, 0.025, 0.01", strconv.FormatFloat(input, 'g', -1, 64)), 1)
			},
		},
		&cli.IntFlag{
			Name:        "distance",
			Aliases:     []string{"d"},
			Usage:       "Distance unit (bp) used to scale and space selected SNPs",
			DefaultText: "10000",
			Category:    "Selection",
		},
		&cli.BoolFlag{
			Name:     "every",
			Aliases:  []string{"e"},
			Usage:    "Select every SNP instead of spacing them by the distance unit",
			Category: "Selection",
		},
		&cli.BoolFlag{
			Name:     "sort",
			Aliases:  []string{"s"},
			Usage:    "Sort SNPs into within- and between-population variation",
			Category: "Sorting",
		},
		&cli.BoolFlag{
			Name:     "hwe",
			Aliases:  []string{"w"},
			Usage:    "Sort within-population SNPs into in- and out-of-HWE (requires --sort)",
			Category: "Sorting",
		},
		&cli.BoolFlag{
			Name:     "no-baits",
			Usage:    "Only write the selected SNP tables, don't generate baits",
			Category: "Optional",
		},
	)
}

// AnnotFlags returns the flags of the annot2baits command
func AnnotFlags() []cli.Flag {
	return append(commonFlags(),
		&cli.IntFlag{
			Name:     "pad",
			Usage:    "Bases added on both sides of each region",
			Category: "Regions",
		},
		&cli.StringSliceFlag{
			Name:     "features",
			Aliases:  []string{"f"},
			Usage:    "Annotation features to extract (case-insensitive), all features by default",
			Category: "Regions",
		},
	)
}
