package hailstone

import (
	"errors"
	"math"
)

var (
	ErrNonPositiveStart = errors.New("hailstone start must be positive")
	ErrOverflow         = errors.New("hailstone value overflows uint64")
)

// maxTripleBase is the largest value whose 3v+1 successor still fits in uint64.
const maxTripleBase = (math.MaxUint64 - 1) / 3

// Appender receives the generated values. *seqbuf.Buffer satisfies it.
type Appender interface {
	Append(v uint64) error
}

// Next applies one step of the hailstone rule.
func Next(v uint64) uint64 {
	if v%2 == 0 {
		return v / 2
	}
	return 3*v + 1
}

func next(v uint64) (uint64, error) {
	if v%2 != 0 && v > maxTripleBase {
		return 0, ErrOverflow
	}
	return Next(v), nil
}

// Step appends every value after start up to and including 1.
// start itself is not appended; for start == 1 nothing is appended.
func Step(buf Appender, start uint64) error {
	if start == 0 {
		return ErrNonPositiveStart
	}
	value := start
	for value != 1 {
		var err error
		if value, err = next(value); err != nil {
			return err
		}
		if err := buf.Append(value); err != nil {
			return err
		}
	}
	return nil
}

// Length returns the number of terms in the sequence from start, start
// included, without storing the terms.
func Length(start uint64) (int, error) {
	if start == 0 {
		return 0, ErrNonPositiveStart
	}
	length := 1
	for value := start; value != 1; length++ {
		var err error
		if value, err = next(value); err != nil {
			return 0, err
		}
	}
	return length, nil
}
