package baits_api

import (
	"errors"
	"strings"
	"testing"
)

const annotation = "##gff-version 2\n" +
	"chr1\tsrc\tgene\t5\t8\t.\t+\t.\tgene_id \"g1\";\n" +
	"chr1\tsrc\tCDS\t2\t3\t.\t+\t0\tgene_id \"g1\";\n" +
	"chr2\tsrc\texon\t1\t4\t.\t-\t.\tgene_id \"g2\";\n"

func TestReadAnnotation(t *testing.T) {
	refs := map[string]*SequenceRecord{
		"chr1": {Name: "chr1", Seq: "AAAACCCCGGGG"},
		"chr2": {Name: "chr2", Seq: "TTTTT", Qual: []byte("ABCDE"), HasQuality: true},
	}

	for _, v := range []struct {
		features []string
		pad      int
		expected string
	}{
		{nil, 0, "chr1_5-8,chr1_2-3,chr2_1-4"},
		{[]string{"Gene", "exon"}, 0, "chr1_5-8,chr2_1-4"},
		{[]string{"cds"}, 3, "chr1_1-6"},
		{[]string{"EXON"}, 2, "chr2_1-5"},
	} {
		config := Config{Features: v.features, Pad: v.pad}
		regions, err := ReadAnnotation(strings.NewReader(annotation), "annot.gff", refs, config)
		if err != nil {
			t.Fatal(err)
		}
		names := []string{}
		for _, region := range regions {
			names = append(names, region.Name)
		}
		if got := strings.Join(names, ","); got != v.expected {
			t.Errorf("features %v pad %d: regions %s, expected %s", v.features, v.pad, got, v.expected)
		}
	}

	regions, err := ReadAnnotation(strings.NewReader(annotation), "annot.gff", refs, Config{Features: []string{"gene", "exon"}})
	if err != nil {
		t.Fatal(err)
	}
	if regions[0].Seq != "CCCC" || regions[0].Qual != nil {
		t.Fatalf("unexpected gene region: %+v", regions[0])
	}
	if regions[1].Seq != "TTTT" || string(regions[1].Qual) != "ABCD" {
		t.Fatalf("unexpected exon region: %+v", regions[1])
	}

	var out strings.Builder
	if err := WriteRegions(&out, regions); err != nil {
		t.Fatal(err)
	}
	if out.String() != ">chr1_5-8\nCCCC\n>chr2_1-4\nTTTT\n" {
		t.Fatalf("regions FASTA = %q", out.String())
	}
}

// annotationLine builds a GFF line for a gene feature
func annotationLine(chromosome string, start string, end string) string {
	return chromosome + "\tsrc\tgene\t" + start + "\t" + end + "\t.\t+\t.\tgene_id \"g1\";\n"
}

func TestReadAnnotationErrors(t *testing.T) {
	refs := map[string]*SequenceRecord{"chr1": {Name: "chr1", Seq: "ACGT"}}

	_, err := ReadAnnotation(strings.NewReader(annotationLine("chr1", "five", "8")), "annot.gff", refs, Config{})
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Source != "annot.gff" {
		t.Fatalf("expected a ParseError for a malformed start, got %v", err)
	}

	if _, err := ReadAnnotation(strings.NewReader(annotationLine("chrX", "1", "2")), "annot.gff", refs, Config{}); err == nil {
		t.Fatal("expected an error for a chromosome missing from the reference")
	}

	if _, err := ReadAnnotation(strings.NewReader(annotationLine("chr1", "10", "20")), "annot.gff", refs, Config{}); err == nil {
		t.Fatal("expected an error for a region beyond the end of the reference")
	}
}
