package baits_api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteStacksEmptySelection(t *testing.T) {
	var out strings.Builder
	if err := WriteStacks(&out, stacksHeader, NewBucket()); err != nil {
		t.Fatal(err)
	}
	if out.String() != stacksHeader {
		t.Fatalf("output = %q, expected only the header", out.String())
	}
}

func TestWriteStacksGroupsRowsByLocus(t *testing.T) {
	rows := []string{
		stacksRow("1", "L1", "chr1", "100", "0", "A", "G", "T", "10", "0.5", "0.5"),
		stacksRow("1", "L2", "chr2", "100", "0", "A", "G", "T", "10", "0.5", "0.5"),
		stacksRow("1", "L1", "chr1", "100", "0", "B", "G", "T", "10", "0.5", "0.5"),
		stacksRow("1", "L3", "chr1", "100", "0", "A", "G", "T", "10", "0.5", "0.5"),
	}
	table, err := ReadStacks(strings.NewReader(stacksHeader+strings.Join(rows, "")), "test.tsv", 10)
	if err != nil {
		t.Fatal(err)
	}

	bucket := NewBucket()
	for _, key := range table.Keys {
		bucket.Add(table.Loci[key])
	}

	var out strings.Builder
	if err := WriteStacks(&out, table.Header, bucket); err != nil {
		t.Fatal(err)
	}
	expected := stacksHeader + rows[0] + rows[2] + rows[3] + rows[1]
	if out.String() != expected {
		t.Fatalf("output:\n%s\nexpected:\n%s", out.String(), expected)
	}
}

func TestWriteStacksTerminatesLastRow(t *testing.T) {
	bucket := NewBucket()
	bucket.Add(&Locus{Chromosome: "chr1", Populations: []*PopulationVariant{{Line: "row\r\n"}, {Line: "last"}}})

	var out strings.Builder
	if err := WriteStacks(&out, "#h\n", bucket); err != nil {
		t.Fatal(err)
	}
	if out.String() != "#h\nrow\r\nlast\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestWriteStacksFile(t *testing.T) {
	config := Config{Outdir: filepath.Join(t.TempDir(), "nested"), Outprefix: "run", OutputTemplate: "$OUTDIR/$PREFIX$TAG$EXT"}

	path, err := WriteStacksFile(config, stacksHeader, NewBucket(), "-inhwe")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "run-inhwe.tsv" {
		t.Fatalf("path = %s, expected run-inhwe.tsv", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != stacksHeader {
		t.Fatalf("content = %q, expected only the header", content)
	}
}

func TestResolveOutputPath(t *testing.T) {
	for _, v := range []struct {
		template string
		expected string
	}{
		{"$OUTDIR/$PREFIX$TAG$EXT", "out/run-betweenpops.tsv"},
		{"$OUTDIR/$PREFIX/$TAG", "out/run/-betweenpops.tsv"},
		{"$OUTDIR/$PREFIX.$HOME$TAG$EXT", "out/run.$HOME-betweenpops.tsv"},
	} {
		config := Config{Outdir: "out", Outprefix: "run", OutputTemplate: v.template}
		if got := ResolveOutputPath(config, "-betweenpops", ".tsv"); got != v.expected {
			t.Errorf("ResolveOutputPath(%q) = %s, expected %s", v.template, got, v.expected)
		}
	}
}
