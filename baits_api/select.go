package baits_api

// Selector chooses the loci of a bucket that will anchor baits
type Selector interface {
	Select(bucket *Bucket, scale ScaleMap) *Bucket
}

// DistanceSelector keeps loci that are at least Distance bases apart on their
// chromosome, with at most the chromosome's scale (minimum 1) per chromosome.
// Loci are considered in insertion order.
type DistanceSelector struct {
	Distance int

	// Keep every locus
	Every bool
}

// NewSelector creates the selector described by the configuration
func NewSelector(config Config) DistanceSelector {
	return DistanceSelector{Distance: config.Distance, Every: config.Every}
}

func (selector DistanceSelector) Select(bucket *Bucket, scale ScaleMap) *Bucket {
	selected := NewBucket()

	for _, chromosome := range bucket.Chromosomes() {
		loci := bucket.Loci(chromosome)
		if selector.Every {
			for _, locus := range loci {
				selected.Add(locus)
			}
			continue
		}

		limit := max(scale[chromosome], 1)
		kept := []*Locus{}
		for _, locus := range loci {
			if len(kept) == limit {
				break
			}
			if selector.tooClose(locus, kept) {
				continue
			}
			kept = append(kept, locus)
			selected.Add(locus)
		}
	}

	return selected
}

func (selector DistanceSelector) tooClose(locus *Locus, kept []*Locus) bool {
	for _, other := range kept {
		distance := locus.Position - other.Position
		if distance < 0 {
			distance = -distance
		}
		if distance < selector.Distance {
			return true
		}
	}
	return false
}
