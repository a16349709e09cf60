package baits_api

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// WriteStacks writes the header followed by the original rows of every locus
// in the bucket. Rows are written as they were read.
func WriteStacks(w io.Writer, header string, bucket *Bucket) error {
	writer := bufio.NewWriter(w)
	last := header

	if _, err := writer.WriteString(header); err != nil {
		return pfx.Err(err)
	}
	for _, chromosome := range bucket.Chromosomes() {
		for _, locus := range bucket.Loci(chromosome) {
			for _, pop := range locus.Populations {
				if _, err := writer.WriteString(pop.Line); err != nil {
					return pfx.Err(err)
				}
				last = pop.Line
			}
		}
	}

	// The last row of the input may lack its line terminator
	if last != "" && !strings.HasSuffix(last, "\n") {
		if err := writer.WriteByte('\n'); err != nil {
			return pfx.Err(err)
		}
	}

	if err := writer.Flush(); err != nil {
		return pfx.Err(err)
	}
	return nil
}

// WriteStacksFile writes the bucket to the output path of the tag
func WriteStacksFile(config Config, header string, bucket *Bucket, tag string) (string, error) {
	path := ResolveOutputPath(config, tag, ".tsv")
	return path, createAndWrite(path, func(w io.Writer) error {
		return WriteStacks(w, header, bucket)
	})
}

// Create the file (and its directory) and hand it to fn
func createAndWrite(path string, fn func(w io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return pfx.Err(err)
	}
	outputFile, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer func() {
		if cerr := outputFile.Close(); cerr != nil && err == nil {
			err = pfx.Err(cerr)
		}
	}()

	return fn(outputFile)
}
