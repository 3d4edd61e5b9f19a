// Package synth produces randomized scalar values for the generators. A
// Synthesizer is a thin layer over a seeded gofakeit.Faker; calls never fail
// for bounded inputs with min <= max.
package synth

import (
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Synthesizer is safe for concurrent use; the underlying faker runs in lock
// mode. Reproducible runs use one Synthesizer per unit of work instead.
type Synthesizer struct {
	f    *gofakeit.Faker
	seed uint64
}

// New returns a Synthesizer seeded with seed. A zero seed picks a time based
// seed, so two unseeded runs differ.
func New(seed uint64) *Synthesizer {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Synthesizer{f: gofakeit.New(seed), seed: seed}
}

// Seed returns the effective seed.
func (s *Synthesizer) Seed() uint64 {
	return s.seed
}

// Derive returns a new Synthesizer whose stream depends only on this
// Synthesizer's seed and key, not on how many values were drawn so far.
func (s *Synthesizer) Derive(key int64) *Synthesizer {
	// splitmix64 finalizer spreads neighbouring keys across the seed space.
	z := s.seed + uint64(key)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 1
	}
	return &Synthesizer{f: gofakeit.New(z), seed: z}
}

// Int returns an integer in [min, max].
func (s *Synthesizer) Int(min, max int) int {
	if min >= max {
		return min
	}
	return s.f.IntRange(min, max)
}

// Int64 returns an integer in [min, max].
func (s *Synthesizer) Int64(min, max int64) int64 {
	if min >= max {
		return min
	}
	n := s.f.Int64() & math.MaxInt64
	return min + n%(max-min+1)
}

// Float returns a value in [min, max] rounded to the given precision
// (e.g. 0.1). A non-positive precision leaves the value unrounded.
func (s *Synthesizer) Float(min, max, precision float64) float64 {
	if min >= max {
		return min
	}
	v := s.f.Float64Range(min, max)
	if precision > 0 {
		v = math.Round(v/precision) * precision
		// Undo float noise such as 12.300000000000001.
		decimals := math.Max(0, math.Ceil(-math.Log10(precision)))
		scale := math.Pow(10, decimals)
		v = math.Round(v*scale) / scale
	}
	return math.Min(max, math.Max(min, v))
}

// Date returns an instant in [min, max].
func (s *Synthesizer) Date(min, max time.Time) time.Time {
	if !min.Before(max) {
		return min
	}
	span := max.Sub(min)
	return min.Add(time.Duration(s.Int64(0, int64(span))))
}

// Bool returns true or false with equal probability.
func (s *Synthesizer) Bool() bool {
	return s.f.Bool()
}

// Choice returns one element of set. set must be non-empty.
func Choice[T any](s *Synthesizer, set []T) T {
	return set[s.Int(0, len(set)-1)]
}

// PersonName returns a first and last name.
func (s *Synthesizer) PersonName() (first, last string) {
	return s.f.FirstName(), s.f.LastName()
}

// Gender returns "male" or "female".
func (s *Synthesizer) Gender() string {
	return s.f.Gender()
}

// CompanyName returns a company name.
func (s *Synthesizer) CompanyName() string {
	return s.f.Company()
}

// Address returns a single line "street, city" address.
func (s *Synthesizer) Address() string {
	return s.f.Street() + ", " + s.f.City()
}

// Sentence returns a short free text sentence.
func (s *Synthesizer) Sentence() string {
	return s.f.Sentence(s.Int(5, 12))
}
