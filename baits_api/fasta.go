package baits_api

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
)

// ReadReferenceFile reads a (bgzipped) FASTA or FASTQ reference from disk
func ReadReferenceFile(file string) (map[string]*SequenceRecord, error) {
	input, err := openInput(file)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	return ReadReference(input, file)
}

// ReadReference parses a FASTA or FASTQ reference, keyed by sequence name.
// The format of the whole file is decided by its first header character.
func ReadReference(r io.Reader, source string) (map[string]*SequenceRecord, error) {
	reader := bufio.NewReader(r)
	records := map[string]*SequenceRecord{}

	marker, err := firstMarker(reader)
	if errors.Is(err, io.EOF) {
		return records, nil
	}
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	var sc *seqio.Scanner
	switch marker {
	case '>':
		sc = seqio.NewScanner(fasta.NewReader(reader, linear.NewSeq("", nil, alphabet.DNAgapped)))
	case '@':
		sc = seqio.NewScanner(fastq.NewReader(reader, linear.NewQSeq("", nil, alphabet.DNAgapped, alphabet.Sanger)))
	default:
		return nil, &ParseError{Source: source, Line: 1, Err: errors.New("sequence data outside of a record, expected a FASTA or FASTQ header")}
	}

	for sc.Next() {
		var record *SequenceRecord
		switch s := sc.Seq().(type) {
		case *linear.Seq:
			record = fastaRecord(s)
		case *linear.QSeq:
			record = fastqRecord(s)
		}
		records[record.Name] = record
	}
	if err := sc.Error(); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	return records, nil
}

// Skip leading blank space and return the first byte without consuming it
func firstMarker(reader *bufio.Reader) (byte, error) {
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, reader.UnreadByte()
	}
}

func fastaRecord(s *linear.Seq) *SequenceRecord {
	seq := make([]byte, len(s.Seq))
	for i, letter := range s.Seq {
		seq[i] = byte(letter)
	}
	return &SequenceRecord{Name: headerName(s.Name()), Seq: string(seq)}
}

// Qualities are kept Phred+33 encoded
func fastqRecord(s *linear.QSeq) *SequenceRecord {
	seq := make([]byte, len(s.Seq))
	qual := make([]byte, len(s.Seq))
	for i, letter := range s.Seq {
		seq[i] = byte(letter.L)
		qual[i] = byte(letter.Q) + 33
	}
	return &SequenceRecord{Name: headerName(s.Name()), Seq: string(seq), Qual: qual, HasQuality: true}
}

// The name of a record is the first word of its header
func headerName(header string) string {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// WriteFASTA writes name/sequence pairs as FASTA records, one sequence line each
func WriteFASTA(w io.Writer, names []string, seqs []string) error {
	width := 1
	for _, seq := range seqs {
		width = max(width, len(seq))
	}

	buffered := bufio.NewWriter(w)
	writer := fasta.NewWriter(buffered, width)
	for i, name := range names {
		record := linear.NewSeq(name, alphabet.BytesToLetters([]byte(seqs[i])), alphabet.DNAgapped)
		if _, err := writer.Write(record); err != nil {
			return err
		}
	}
	return buffered.Flush()
}
