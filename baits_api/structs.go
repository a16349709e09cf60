package baits_api

// A struct representing the observation of a SNP in one population
// One of these is created for every data row of the Stacks table
type PopulationVariant struct {
	// The population ID of the row
	Pop string

	// The alleles seen in this population (at most two)
	// The Stacks placeholder "-" is never stored
	Alleles []string

	// The number of individuals genotyped in this population
	SampleSize int

	// The frequency of the major allele
	PFreq float64

	// The observed heterozygosity
	HetObs float64

	// The original row of the table, including its line terminator
	Line string
}

// The compound key of a SNP locus
// A Stacks locus can contain several SNPs, each of them is its own Locus
type LocusKey struct {
	// The Stacks locus ID
	LocusID string

	// The column of the SNP within the Stacks locus
	SNPIndex string
}

// A struct representing a SNP site and all of its population observations
type Locus struct {
	// The compound key of this SNP
	Key LocusKey

	// The chromosome or scaffold of the SNP
	Chromosome string

	// The 1-based position of the SNP
	Position int

	// One entry per population reporting this SNP, in input order
	Populations []*PopulationVariant
}

// The number of distance units per chromosome
// Used by the selection step to cap the amount of SNPs per chromosome
type ScaleMap map[string]int

// The parsed Stacks table
type StacksTable struct {
	// All comment lines of the input, concatenated verbatim
	Header string

	// All loci by their compound key
	Loci map[LocusKey]*Locus

	// The keys of Loci in the order they were first seen
	Keys []LocusKey

	// The scale of each chromosome
	Scale ScaleMap

	// The amount of data rows read
	Rows int
}

// A struct mapping chromosomes to an ordered list of loci
// Chromosomes and loci are kept in insertion order
type Bucket struct {
	chromosomes []string
	loci        map[string][]*Locus
}

// The four classification buckets of a Stacks table
type Classification struct {
	// Loci varying within at least one population
	Within *Bucket

	// Loci only varying between populations (all loci when not sorting)
	Between *Bucket

	// Within-population loci in HWE in every population
	InHWE *Bucket

	// Within-population loci out of HWE in at least one population
	OutHWE *Bucket
}

// A struct representing one reference sequence
type SequenceRecord struct {
	// The name of the sequence (first word of the header)
	Name string

	// The sequence itself, case is preserved to detect soft-masking
	Seq string

	// Phred+33 qualities, only set when HasQuality is true
	Qual []byte

	// Whether the record came from a FASTQ file
	HasQuality bool
}

// A struct representing a candidate bait
type Bait struct {
	// The name used in the FASTA and BED outputs
	Name string

	// The chromosome the bait was taken from
	Chromosome string

	// The 1-based inclusive coordinates of the bait
	Start int
	End   int

	// The bait sequence
	Seq string

	// The GC content in percent
	GC float64

	// The percentage of soft-masked (lowercase) bases
	Masked float64

	// The mean Phred quality, -1 when the reference has none
	MeanQuality float64

	// The filters the bait failed, empty when the bait passed
	Reasons []string

	// The locus the bait was designed for, nil for tiled baits
	Locus *Locus
}

// The result of a bait generation run
type BaitResult struct {
	// All candidate baits, in generation order
	Baits []*Bait

	// The baits passing every filter
	Passed []*Bait

	// The loci for which a bait passed the filters
	Retained *Bucket
}

// A struct representing an annotated region extracted from the reference
type Region struct {
	// The name of the region, "<chrom>_<start>-<end>"
	Name string

	// The chromosome of the region
	Chromosome string

	// The feature type of the annotation line
	Feature string

	// The 1-based inclusive coordinates after padding and clipping
	Start int
	End   int

	// The sequence of the region
	Seq string

	// The qualities of the region when the reference has them
	Qual []byte
}
