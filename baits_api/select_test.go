package baits_api

import (
	"testing"
)

func TestDistanceSelector(t *testing.T) {
	bucket := NewBucket()
	for _, locus := range []*Locus{
		{Key: LocusKey{"a", "0"}, Chromosome: "chr1", Position: 100},
		{Key: LocusKey{"b", "0"}, Chromosome: "chr1", Position: 150},
		{Key: LocusKey{"c", "0"}, Chromosome: "chr1", Position: 250},
		{Key: LocusKey{"d", "0"}, Chromosome: "chr1", Position: 400},
		{Key: LocusKey{"e", "0"}, Chromosome: "chr2", Position: 10},
		{Key: LocusKey{"f", "0"}, Chromosome: "chr2", Position: 500},
	} {
		bucket.Add(locus)
	}

	for _, v := range []struct {
		selector DistanceSelector
		scale    ScaleMap
		expected string
	}{
		{DistanceSelector{Distance: 100, Every: true}, ScaleMap{}, "a,b,c,d,e,f"},
		{DistanceSelector{Distance: 100}, ScaleMap{"chr1": 10, "chr2": 10}, "a,c,d,e,f"},
		{DistanceSelector{Distance: 100}, ScaleMap{"chr1": 2, "chr2": 10}, "a,c,e,f"},
		{DistanceSelector{Distance: 100}, ScaleMap{"chr1": 0, "chr2": 0}, "a,e"},
		{DistanceSelector{Distance: 1000}, ScaleMap{"chr1": 10, "chr2": 10}, "a,e"},
	} {
		selected := v.selector.Select(bucket, v.scale)
		if got := keysOf(selected); got != v.expected {
			t.Errorf("%+v with scale %v selected %s, expected %s", v.selector, v.scale, got, v.expected)
		}
	}

	if bucket.Len() != 6 {
		t.Fatalf("selection modified its input bucket")
	}
}

func TestNewSelector(t *testing.T) {
	selector := NewSelector(Config{Distance: 500, Every: true})
	if selector.Distance != 500 || !selector.Every {
		t.Fatalf("unexpected selector %+v", selector)
	}
}
