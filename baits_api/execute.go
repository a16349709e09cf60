package baits_api

import (
	"io"

	"github.com/sirupsen/logrus"
)

// A classification bucket going through selection and bait generation
type stage struct {
	tag       string
	title     string
	baitTitle string
	bucket    *Bucket
	hwe       bool
}

// Decide which buckets are written. When HWE sorting is enabled the
// within-population bucket is only written through its HWE split.
func stagesFor(config Config, classes *Classification) []stage {
	stages := []stage{{tag: "-betweenpops", title: "BetweenPopsVariants", baitTitle: "BetweenPopsVariantBaits", bucket: classes.Between}}
	switch {
	case config.Sort && config.HWE:
		stages = append(stages,
			stage{tag: "-inhwe", title: "InHWEVariants", baitTitle: "InHWEVariantBaits", bucket: classes.InHWE, hwe: true},
			stage{tag: "-outhwe", title: "OutHWEVariants", baitTitle: "OutHWEVariantBaits", bucket: classes.OutHWE, hwe: true},
		)
	case config.Sort:
		stages = append(stages, stage{tag: "-withinpops", title: "WithinPopsVariants", baitTitle: "WithinPopsVariantBaits", bucket: classes.Within})
	}
	return stages
}

// Stacks2Baits runs the SNP pipeline: read, classify, select, write and
// generate baits for every selected bucket
func Stacks2Baits(config Config, version string) error {
	return runStacks2Baits(config, version, NewSelector(config), NewBaitGenerator(config))
}

func runStacks2Baits(config Config, version string, selector Selector, generator BaitGenerator) error {
	runLog := NewRunLog(config.Log, "stacks2baits", version)

	logrus.WithField("input", config.Input).Info("Reading stacks tsv")
	table, err := ReadStacksFile(config.Input, config.Distance)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"rows": table.Rows, "loci": len(table.Keys)}).Info("Read stacks tsv")

	logrus.Info("Sorting SNPs")
	classes, err := Classify(table, config)
	if err != nil {
		return err
	}
	critical, err := CriticalValue(config.Alpha)
	if err != nil {
		return err
	}

	logrus.Info("Selecting SNPs")
	stages := stagesFor(config, classes)
	selected := make([]*Bucket, len(stages))
	for i, stage := range stages {
		runLog.Section(stage.title)
		selected[i] = selector.Select(stage.bucket, table.Scale)
		runLog.Bucket(selected[i])
		if stage.hwe {
			runLog.HWE(selected[i], critical)
		}

		path, err := WriteStacksFile(config, table.Header, selected[i], stage.tag)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"bucket":   stage.title,
			"loci":     stage.bucket.Len(),
			"selected": selected[i].Len(),
			"output":   path,
		}).Info("Wrote selected SNPs")
	}

	if !config.NoBaits {
		logrus.WithField("refseq", config.Refseq).Info("Reading reference sequence")
		refs, err := ReadReferenceFile(config.Refseq)
		if err != nil {
			return err
		}

		logrus.Info("Generating and filtering baits")
		for i, stage := range stages {
			runLog.Section(stage.baitTitle)
			result, err := generator.Generate(selected[i], refs)
			if err != nil {
				return err
			}
			runLog.Baits(result)

			if _, err := WriteStacksFile(config, table.Header, result.Retained, stage.tag+"-filtered"); err != nil {
				return err
			}
			if _, err := WriteBaits(config, result, stage.tag); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"bucket": stage.title,
				"baits":  len(result.Baits),
				"passed": len(result.Passed),
			}).Info("Wrote baits")
		}
	}

	return runLog.Write(config, "-stacks2baits")
}

// Annot2Baits extracts the annotated regions and tiles baits over them
func Annot2Baits(config Config, version string) error {
	runLog := NewRunLog(config.Log, "annot2baits", version)

	logrus.WithField("refseq", config.Refseq).Info("Reading reference sequence")
	refs, err := ReadReferenceFile(config.Refseq)
	if err != nil {
		return err
	}

	logrus.WithField("input", config.Input).Info("Reading annotation file")
	regions, err := ReadAnnotationFile(config.Input, refs, config)
	if err != nil {
		return err
	}
	runLog.Section("ExtractedRegions")
	runLog.Regions(regions)

	if err := createAndWrite(ResolveOutputPath(config, "-regions", ".fa"), func(w io.Writer) error {
		return WriteRegions(w, regions)
	}); err != nil {
		return err
	}
	logrus.WithField("regions", len(regions)).Info("Wrote regions")

	logrus.Info("Tiling and filtering baits")
	result := TileBaits(regions, config.Bait.Length, config.Bait.Offset, config.Filters)
	runLog.Section("RegionBaits")
	runLog.Baits(result)
	if _, err := WriteBaits(config, result, ""); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"baits": len(result.Baits), "passed": len(result.Passed)}).Info("Wrote baits")

	return runLog.Write(config, "-annot2baits")
}
