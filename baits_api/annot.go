package baits_api

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/biogo/biogo/io/featio/gff"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ReadAnnotationFile reads a (bgzipped) annotation from disk and extracts its regions
func ReadAnnotationFile(file string, refs map[string]*SequenceRecord, config Config) ([]*Region, error) {
	input, err := openInput(file)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	return ReadAnnotation(input, file, refs, config)
}

// ReadAnnotation extracts the padded regions of the requested features from the reference.
// Regions are clipped to the ends of their reference sequence.
func ReadAnnotation(r io.Reader, source string, refs map[string]*SequenceRecord, config Config) ([]*Region, error) {
	upper := cases.Upper(language.Und)
	features := make([]string, len(config.Features))
	for i, feature := range config.Features {
		features[i] = upper.String(feature)
	}

	regions := []*Region{}
	reader := gff.NewReader(r)
	for {
		f, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Source: source, Err: err}
		}

		gf := f.(*gff.Feature)
		if len(features) > 0 && !slices.Contains(features, upper.String(gf.Feature)) {
			continue
		}

		ref, ok := refs[gf.SeqName]
		if !ok {
			return nil, fmt.Errorf("%s: %s feature at %s:%d is on a chromosome that is not present in the reference sequence", source, gf.Feature, gf.SeqName, gf.FeatStart+1)
		}

		// GFF features are read 0-based half-open
		start := max(gf.FeatStart+1-config.Pad, 1)
		end := min(gf.FeatEnd+config.Pad, len(ref.Seq))
		if start > end {
			return nil, fmt.Errorf("%s: %s feature %d-%d lies outside of %s (%d bp)", source, gf.Feature, gf.FeatStart+1, gf.FeatEnd, gf.SeqName, len(ref.Seq))
		}

		region := &Region{
			Name:       fmt.Sprintf("%s_%d-%d", gf.SeqName, start, end),
			Chromosome: gf.SeqName,
			Feature:    gf.Feature,
			Start:      start,
			End:        end,
			Seq:        ref.Seq[start-1 : end],
		}
		if ref.HasQuality {
			region.Qual = ref.Qual[start-1 : end]
		}
		regions = append(regions, region)
	}

	return regions, nil
}

// WriteRegions writes the regions as FASTA
func WriteRegions(w io.Writer, regions []*Region) error {
	names := make([]string, len(regions))
	seqs := make([]string, len(regions))
	for i, region := range regions {
		names[i] = region.Name
		seqs[i] = region.Seq
	}
	return WriteFASTA(w, names, seqs)
}
