package baits_api

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Chi-square critical values with one degree of freedom
var criticalValues = map[float64]float64{
	0.1:   2.706,
	0.05:  3.841,
	0.025: 5.024,
	0.01:  6.635,
}

// SupportedAlphas returns the significance levels with a known critical value
func SupportedAlphas() []float64 {
	return []float64{0.1, 0.05, 0.025, 0.01}
}

// CriticalValue returns the chi-square critical value for the significance level
func CriticalValue(alpha float64) (float64, error) {
	critical, ok := criticalValues[alpha]
	if !ok {
		return 0, &ConfigError{
			Option: "alpha",
			Reason: fmt.Sprintf("unsupported significance level %v, must be one of %v", alpha, SupportedAlphas()),
		}
	}
	return critical, nil
}

// The outcome of the HWE test of one population
type HWETest struct {
	ChiSquare float64

	// The upper tail probability of ChiSquare, 1 when indeterminate
	PValue float64

	// At least one expected genotype count was zero
	Indeterminate bool

	InHWE bool
}

// Monomorphic reports whether the population is fixed for one allele
func (pop *PopulationVariant) Monomorphic() bool {
	return pop.PFreq == 1 || pop.PFreq == 0
}

// ChiSquare computes the HWE goodness-of-fit statistic from the allele
// frequency, heterozygosity and sample size. Observed genotype counts are
// truncated toward zero. ErrIndeterminateTest is returned when any expected
// count is zero.
func (pop *PopulationVariant) ChiSquare() (float64, error) {
	n := float64(pop.SampleSize)
	p := pop.PFreq
	q := 1 - p

	p2exp := p * p * n
	q2exp := q * q * n
	pqexp := 2 * p * q * n
	if p2exp == 0 || q2exp == 0 || pqexp == 0 {
		return 0, ErrIndeterminateTest
	}

	pqobs := math.Trunc(pop.HetObs * n)
	p2obs := math.Trunc((p - pop.HetObs/2) * n)
	q2obs := math.Trunc((q - pop.HetObs/2) * n)

	return math.Pow(p2obs-p2exp, 2)/p2exp +
		math.Pow(pqobs-pqexp, 2)/pqexp +
		math.Pow(q2obs-q2exp, 2)/q2exp, nil
}

// HWE tests the population against the critical value of the significance level.
// An indeterminate test is treated as conforming.
func (pop *PopulationVariant) HWE(critical float64) HWETest {
	chi, err := pop.ChiSquare()
	if errors.Is(err, ErrIndeterminateTest) {
		return HWETest{PValue: 1, Indeterminate: true, InHWE: true}
	}
	return HWETest{
		ChiSquare: chi,
		PValue:    distuv.ChiSquared{K: 1}.Survival(chi),
		InHWE:     inEquilibrium(chi, critical),
	}
}

func inEquilibrium(chi, critical float64) bool {
	return chi < critical
}
