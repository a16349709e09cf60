package baits_api

import (
	"fmt"
	"io"
	"strings"
)

// RunLog collects the human readable summary of a run.
// A disabled log ignores every call.
type RunLog struct {
	enabled bool
	text    strings.Builder
}

// NewRunLog creates a run log, headed by the command and its version
func NewRunLog(enabled bool, command string, version string) *RunLog {
	runLog := &RunLog{enabled: enabled}
	runLog.printf("%s %s\n\n", command, version)
	return runLog
}

func (runLog *RunLog) printf(format string, a ...any) {
	if runLog.enabled {
		fmt.Fprintf(&runLog.text, format, a...)
	}
}

// Section starts a new titled section
func (runLog *RunLog) Section(title string) {
	runLog.printf("%s\n", title)
}

// Bucket logs the loci and rows of a bucket per chromosome
func (runLog *RunLog) Bucket(bucket *Bucket) {
	runLog.printf("Chromosome\tLoci\tRows\n")
	for _, chromosome := range bucket.Chromosomes() {
		rows := 0
		for _, locus := range bucket.Loci(chromosome) {
			rows += len(locus.Populations)
		}
		runLog.printf("%s\t%d\t%d\n", chromosome, len(bucket.Loci(chromosome)), rows)
	}
	runLog.printf("\nTotalLoci\tTotalRows\n%d\t%d\n\n", bucket.Len(), bucket.Rows())
}

// HWE logs the test outcome of every population of the bucket
func (runLog *RunLog) HWE(bucket *Bucket, critical float64) {
	runLog.printf("Locus\tSNP\tPopulation\tChiSquare\tPValue\tInHWE\n")
	for _, chromosome := range bucket.Chromosomes() {
		for _, locus := range bucket.Loci(chromosome) {
			for _, pop := range locus.Populations {
				test := pop.HWE(critical)
				chi := "NA"
				if !test.Indeterminate {
					chi = fmt.Sprintf("%.4f", test.ChiSquare)
				}
				runLog.printf("%s\t%s\t%s\t%s\t%.4g\t%t\n", locus.Key.LocusID, locus.Key.SNPIndex, pop.Pop, chi, test.PValue, test.InHWE)
			}
		}
	}
	runLog.printf("\n")
}

// Baits logs the bait counts and lengths of a result
func (runLog *RunLog) Baits(result *BaitResult) {
	runLog.printf("TotalBaits\tTotalBaitLength\tPassedBaits\tPassedBaitLength\tRetainedLoci\n")
	runLog.printf("%d\t%d\t%d\t%d\t%d\n\n",
		len(result.Baits), TotalLength(result.Baits),
		len(result.Passed), TotalLength(result.Passed),
		result.Retained.Len())
}

// Regions logs every extracted region and the totals
func (runLog *RunLog) Regions(regions []*Region) {
	runLog.printf("Region\tStart\tEnd\tLength\n")
	total := 0
	for _, region := range regions {
		runLog.printf("%s\t%d\t%d\t%d\n", region.Name, region.Start, region.End, len(region.Seq))
		total += len(region.Seq)
	}
	runLog.printf("\nTotalRegions\tTotalRegionLength\n%d\t%d\n\n", len(regions), total)
}

// String returns the collected text
func (runLog *RunLog) String() string {
	return runLog.text.String()
}

// WriteTo writes the collected text
func (runLog *RunLog) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, runLog.text.String())
	return int64(n), err
}

// Write stores the log next to the other outputs, if enabled
func (runLog *RunLog) Write(config Config, tag string) error {
	if !runLog.enabled {
		return nil
	}
	return createAndWrite(ResolveOutputPath(config, tag, ".log"), func(w io.Writer) error {
		_, err := runLog.WriteTo(w)
		return err
	})
}
