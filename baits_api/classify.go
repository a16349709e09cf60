package baits_api

import (
	"github.com/sirupsen/logrus"
)

// NewBucket creates an empty bucket
func NewBucket() *Bucket {
	return &Bucket{loci: map[string][]*Locus{}}
}

// Add appends the locus to the list of its chromosome
func (bucket *Bucket) Add(locus *Locus) {
	if _, ok := bucket.loci[locus.Chromosome]; !ok {
		bucket.chromosomes = append(bucket.chromosomes, locus.Chromosome)
	}
	bucket.loci[locus.Chromosome] = append(bucket.loci[locus.Chromosome], locus)
}

// Chromosomes returns the chromosomes in the order they were first added
func (bucket *Bucket) Chromosomes() []string {
	return bucket.chromosomes
}

// Loci returns the loci of a chromosome in insertion order
func (bucket *Bucket) Loci(chromosome string) []*Locus {
	return bucket.loci[chromosome]
}

// Len returns the total amount of loci
func (bucket *Bucket) Len() int {
	total := 0
	for _, loci := range bucket.loci {
		total += len(loci)
	}
	return total
}

// Rows returns the total amount of population rows
func (bucket *Bucket) Rows() int {
	total := 0
	for _, loci := range bucket.loci {
		for _, locus := range loci {
			total += len(locus.Populations)
		}
	}
	return total
}

// VariesWithinPopulations reports whether at least one population is polymorphic for the SNP
func VariesWithinPopulations(locus *Locus) bool {
	for _, pop := range locus.Populations {
		if !pop.Monomorphic() {
			return true
		}
	}
	return false
}

// InHWE reports whether every population of the locus conforms to HWE.
// A single non-conforming population puts the whole locus out of HWE.
func (locus *Locus) InHWE(critical float64) bool {
	for _, pop := range locus.Populations {
		test := pop.HWE(critical)
		if test.Indeterminate {
			logrus.WithFields(logrus.Fields{
				"locus":      locus.Key.LocusID,
				"snp":        locus.Key.SNPIndex,
				"population": pop.Pop,
			}).Debug("Indeterminate HWE test, treating population as in HWE")
		}
		if !test.InHWE {
			return false
		}
	}
	return true
}

// Classify sorts all loci of the table into the classification buckets
func Classify(table *StacksTable, config Config) (*Classification, error) {
	critical, err := CriticalValue(config.Alpha)
	if err != nil {
		return nil, err
	}

	classes := &Classification{
		Within:  NewBucket(),
		Between: NewBucket(),
		InHWE:   NewBucket(),
		OutHWE:  NewBucket(),
	}

	for _, key := range table.Keys {
		locus := table.Loci[key]
		if !config.Sort || !VariesWithinPopulations(locus) {
			classes.Between.Add(locus)
			continue
		}

		classes.Within.Add(locus)
		if !config.HWE {
			continue
		}
		if locus.InHWE(critical) {
			classes.InHWE.Add(locus)
		} else {
			classes.OutHWE.Add(locus)
		}
	}

	return classes, nil
}
