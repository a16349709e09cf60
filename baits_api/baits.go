package baits_api

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// The reasons a bait can be filtered out
const (
	ReasonIncomplete = "incomplete"
	ReasonNs         = "contains_N"
	ReasonGCLow      = "gc_low"
	ReasonGCHigh     = "gc_high"
	ReasonMasked     = "masked"
	ReasonQuality    = "low_quality"
)

// BaitGenerator turns selected loci into filtered baits
type BaitGenerator interface {
	Generate(bucket *Bucket, refs map[string]*SequenceRecord) (*BaitResult, error)
}

// SNPBaitGenerator designs one bait per locus, with Offset bases before the SNP
type SNPBaitGenerator struct {
	Length  int
	Offset  int
	Filters FilterConfig
}

// NewBaitGenerator creates the SNP bait generator described by the configuration
func NewBaitGenerator(config Config) SNPBaitGenerator {
	return SNPBaitGenerator{Length: config.Bait.Length, Offset: config.Bait.Offset, Filters: config.Filters}
}

func (generator SNPBaitGenerator) Generate(bucket *Bucket, refs map[string]*SequenceRecord) (*BaitResult, error) {
	result := &BaitResult{Retained: NewBucket()}

	for _, chromosome := range bucket.Chromosomes() {
		ref, ok := refs[chromosome]
		if !ok {
			return nil, fmt.Errorf("chromosome %s is not present in the reference sequence", chromosome)
		}
		for _, locus := range bucket.Loci(chromosome) {
			if locus.Position < 1 || locus.Position > len(ref.Seq) {
				return nil, fmt.Errorf("SNP %s_%s at %s:%d lies outside of the reference (%d bp)",
					locus.Key.LocusID, locus.Key.SNPIndex, chromosome, locus.Position, len(ref.Seq))
			}

			start := locus.Position - generator.Offset
			bait := cutBait(ref, start, start+generator.Length-1)
			bait.Name = fmt.Sprintf("%s_%d-%d_SNP%d", chromosome, bait.Start, bait.End, locus.Position)
			bait.Locus = locus
			generator.Filters.apply(bait, generator.Length)

			result.Baits = append(result.Baits, bait)
			if len(bait.Reasons) == 0 {
				result.Passed = append(result.Passed, bait)
				result.Retained.Add(locus)
			}
		}
	}

	return result, nil
}

// TileBaits tiles baits of the given length every step bases over each region
func TileBaits(regions []*Region, length int, step int, filters FilterConfig) *BaitResult {
	result := &BaitResult{Retained: NewBucket()}
	step = max(step, 1)

	for _, region := range regions {
		ref := &SequenceRecord{Name: region.Chromosome, Seq: region.Seq, Qual: region.Qual, HasQuality: region.Qual != nil}
		for offset := 0; offset < len(region.Seq); offset += step {
			bait := cutBait(ref, offset+1, offset+length)
			bait.Start += region.Start - 1
			bait.End += region.Start - 1
			bait.Name = fmt.Sprintf("%s_%d-%d", region.Chromosome, bait.Start, bait.End)
			filters.apply(bait, length)

			result.Baits = append(result.Baits, bait)
			if len(bait.Reasons) == 0 {
				result.Passed = append(result.Passed, bait)
			}
			if offset+length >= len(region.Seq) {
				break
			}
		}
	}

	return result
}

// Cut the 1-based inclusive range out of the reference, clipped to its ends
func cutBait(ref *SequenceRecord, start int, end int) *Bait {
	start = max(start, 1)
	end = min(end, len(ref.Seq))
	if end < start {
		end = start - 1
	}

	bait := &Bait{
		Chromosome:  ref.Name,
		Start:       start,
		End:         end,
		Seq:         ref.Seq[start-1 : end],
		MeanQuality: -1,
	}

	gc, masked := 0, 0
	for _, base := range bait.Seq {
		switch base {
		case 'G', 'C', 'S', 'g', 'c', 's':
			gc++
		}
		if base >= 'a' && base <= 'z' {
			masked++
		}
	}
	if len(bait.Seq) > 0 {
		bait.GC = 100 * float64(gc) / float64(len(bait.Seq))
		bait.Masked = 100 * float64(masked) / float64(len(bait.Seq))
	}

	if ref.HasQuality && len(bait.Seq) > 0 {
		total := 0
		for _, qual := range ref.Qual[start-1 : end] {
			total += int(qual) - 33
		}
		bait.MeanQuality = float64(total) / float64(len(bait.Seq))
	}

	return bait
}

// Record every filter the bait fails
func (filters FilterConfig) apply(bait *Bait, length int) {
	if filters.Complete && len(bait.Seq) < length {
		bait.Reasons = append(bait.Reasons, ReasonIncomplete)
	}
	if filters.NoNs && strings.ContainsAny(bait.Seq, "Nn") {
		bait.Reasons = append(bait.Reasons, ReasonNs)
	}
	if bait.GC < filters.GCMin {
		bait.Reasons = append(bait.Reasons, ReasonGCLow)
	}
	if bait.GC > filters.GCMax {
		bait.Reasons = append(bait.Reasons, ReasonGCHigh)
	}
	if bait.Masked > filters.MaxMask {
		bait.Reasons = append(bait.Reasons, ReasonMasked)
	}
	if bait.MeanQuality >= 0 && bait.MeanQuality < filters.MinQuality {
		bait.Reasons = append(bait.Reasons, ReasonQuality)
	}
}

// TotalLength returns the summed length of the baits
func TotalLength(baits []*Bait) int {
	total := 0
	for _, bait := range baits {
		total += len(bait.Seq)
	}
	return total
}

// WriteBaits writes the bait artifacts of a result and returns their paths.
// All candidates and the passing baits are written as FASTA, the passing baits
// as BED and the filter outcome of every bait as a table.
func WriteBaits(config Config, result *BaitResult, tag string) ([]string, error) {
	outputs := []struct {
		tag   string
		ext   string
		write func(w io.Writer) error
	}{
		{tag + "-baits", ".fa", func(w io.Writer) error { return writeBaitFASTA(w, result.Baits) }},
		{tag + "-filtered-baits", ".fa", func(w io.Writer) error { return writeBaitFASTA(w, result.Passed) }},
		{tag + "-filtered-baits", ".bed", func(w io.Writer) error { return writeBaitBED(w, result.Passed) }},
		{tag + "-baits-filtration", ".tsv", func(w io.Writer) error { return writeFiltration(w, result.Baits) }},
	}

	paths := []string{}
	for _, output := range outputs {
		path := ResolveOutputPath(config, output.tag, output.ext)
		if err := createAndWrite(path, output.write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeBaitFASTA(w io.Writer, baits []*Bait) error {
	names := make([]string, len(baits))
	seqs := make([]string, len(baits))
	for i, bait := range baits {
		names[i] = bait.Name
		seqs[i] = bait.Seq
	}
	return WriteFASTA(w, names, seqs)
}

// BED coordinates are 0-based half-open
func writeBaitBED(w io.Writer, baits []*Bait) error {
	writer := bufio.NewWriter(w)
	for _, bait := range baits {
		if _, err := fmt.Fprintf(writer, "%s\t%d\t%d\t%s\n", bait.Chromosome, bait.Start-1, bait.End, bait.Name); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func writeFiltration(w io.Writer, baits []*Bait) error {
	writer := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(writer, "#Bait\tLength\tGC%\tMasked%\tMeanQuality\tKept\tReasons"); err != nil {
		return err
	}
	for _, bait := range baits {
		quality := "NA"
		if bait.MeanQuality >= 0 {
			quality = fmt.Sprintf("%.2f", bait.MeanQuality)
		}
		kept, reasons := "yes", "."
		if len(bait.Reasons) > 0 {
			kept, reasons = "no", strings.Join(bait.Reasons, ",")
		}
		if _, err := fmt.Fprintf(writer, "%s\t%d\t%.2f\t%.2f\t%s\t%s\t%s\n",
			bait.Name, len(bait.Seq), bait.GC, bait.Masked, quality, kept, reasons); err != nil {
			return err
		}
	}
	return writer.Flush()
}
