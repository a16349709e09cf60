package baits_api

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/carbocation/pfx"
	"github.com/klauspost/pgzip"
)

// The columns of a Stacks populations summary statistics table
const (
	colLocusID = 1
	colChrom   = 2
	colLength  = 3
	colSNP     = 4
	colPop     = 5
	colPNuc    = 6
	colQNuc    = 7
	colN       = 8
	colP       = 9
	colHetObs  = 10
	minColumns = 11
)

// The placeholder Stacks uses for a missing allele
const nonAllele = "-"

var (
	errNegative     = errors.New("must not be negative")
	errNotFrequency = errors.New("must be a frequency between 0 and 1")
)

// Open a plain, bgzipped or gzipped file for reading
func openInput(file string) (io.ReadCloser, error) {
	openFile, err := os.Open(file)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if !strings.HasSuffix(file, ".gz") {
		return openFile, nil
	}

	bgReader, err := bgzf.NewReader(openFile, 1)
	if err == nil {
		return struct {
			io.Reader
			io.Closer
		}{Reader: bgReader, Closer: multiCloser{bgReader, openFile}}, nil
	}

	// Not BGZF, retry as a plain gzip stream
	if _, err := openFile.Seek(0, io.SeekStart); err != nil {
		openFile.Close()
		return nil, pfx.Err(err)
	}
	gzReader, err := pgzip.NewReader(openFile)
	if err != nil {
		openFile.Close()
		return nil, pfx.Err(err)
	}
	return struct {
		io.Reader
		io.Closer
	}{Reader: gzReader, Closer: multiCloser{gzReader, openFile}}, nil
}

type multiCloser []io.Closer

func (closers multiCloser) Close() error {
	var err error
	for _, closer := range closers {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Call fn for every line of the reader, line terminators included
func eachLine(r io.Reader, fn func(line string, number int) error) error {
	reader := bufio.NewReaderSize(r, 8*1000000)
	number := 0
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			number++
			if ferr := fn(line, number); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return pfx.Err(err)
		}
	}
}

// ReadStacksFile reads a (bgzipped) Stacks table from disk
func ReadStacksFile(file string, distance int) (*StacksTable, error) {
	input, err := openInput(file)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	return ReadStacks(input, file, distance)
}

// ReadStacks groups the rows of a Stacks table into loci.
// Comment lines are kept verbatim as the header of the table.
func ReadStacks(r io.Reader, source string, distance int) (*StacksTable, error) {
	if distance <= 0 {
		return nil, &ConfigError{Option: "distance", Reason: "must be a positive number of bases"}
	}

	table := &StacksTable{
		Loci:  map[LocusKey]*Locus{},
		Scale: ScaleMap{},
	}
	var header strings.Builder

	err := eachLine(r, func(line string, number int) error {
		if strings.HasPrefix(line, "#") {
			header.WriteString(line)
			return nil
		}
		if strings.TrimSpace(line) == "" {
			return nil
		}
		return table.parse(line, source, number, distance)
	})
	if err != nil {
		return nil, err
	}

	table.Header = header.String()
	return table, nil
}

func (table *StacksTable) parse(line string, source string, number int, distance int) error {
	data := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(data) < minColumns {
		return &ParseError{
			Source: source,
			Line:   number,
			Err:    errors.New("truncated row: expected at least " + strconv.Itoa(minColumns) + " columns, found " + strconv.Itoa(len(data))),
		}
	}

	// Counts and positions are never negative
	field := func(column int, name string) (int, error) {
		value, err := strconv.Atoi(strings.TrimSpace(data[column]))
		if err == nil && value < 0 {
			err = errNegative
		}
		if err != nil {
			return 0, &ParseError{Source: source, Line: number, Field: name, Value: data[column], Err: err}
		}
		return value, nil
	}
	// Frequencies lie in [0, 1]
	floatField := func(column int, name string) (float64, error) {
		value, err := strconv.ParseFloat(strings.TrimSpace(data[column]), 64)
		if err == nil && !(value >= 0 && value <= 1) {
			err = errNotFrequency
		}
		if err != nil {
			return 0, &ParseError{Source: source, Line: number, Field: name, Value: data[column], Err: err}
		}
		return value, nil
	}

	length, err := field(colLength, "length")
	if err != nil {
		return err
	}
	snp, err := field(colSNP, "snp")
	if err != nil {
		return err
	}
	sampleSize, err := field(colN, "n")
	if err != nil {
		return err
	}
	pFreq, err := floatField(colP, "p")
	if err != nil {
		return err
	}
	hetObs, err := floatField(colHetObs, "obs_het")
	if err != nil {
		return err
	}

	alleles := make([]string, 0, 2)
	for _, allele := range []string{data[colPNuc], data[colQNuc]} {
		if allele != nonAllele {
			alleles = append(alleles, allele)
		}
	}

	pop := &PopulationVariant{
		Pop:        data[colPop],
		Alleles:    alleles,
		SampleSize: sampleSize,
		PFreq:      pFreq,
		HetObs:     hetObs,
		Line:       line,
	}
	table.Rows++

	key := LocusKey{LocusID: data[colLocusID], SNPIndex: data[colSNP]}
	if locus, ok := table.Loci[key]; ok {
		locus.Populations = append(locus.Populations, pop)
		return nil
	}

	chromosome := data[colChrom]
	table.Loci[key] = &Locus{
		Key:         key,
		Chromosome:  chromosome,
		Position:    snp + 1, // Stacks columns are 0-based
		Populations: []*PopulationVariant{pop},
	}
	table.Keys = append(table.Keys, key)
	table.Scale[chromosome] = length / distance

	return nil
}
