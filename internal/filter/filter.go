// Package filter provides the predicate family used to query close
// approaches. A Predicate binds a comparison operator and a reference value
// to one attribute of a close approach (or of its linked NEO); a query is
// the conjunction of an arbitrary set of predicates. Build assembles the
// predicate list from a sparse Criteria, and Limit truncates a result
// stream without over-consuming it.
package filter

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/papapumpkin/perigee/internal/neo"
)

// ErrUnsupportedCriterion is returned when a predicate has no attribute
// accessor — the zero Field, or an operator a field does not support. It
// fails loudly so a missing accessor can never masquerade as "no match".
var ErrUnsupportedCriterion = errors.New("unsupported filter criterion")

// Field selects which attribute of a close approach a predicate compares.
// FieldDiameter and FieldHazardous reach through the approach's linked NEO.
type Field int

const (
	fieldInvalid Field = iota
	FieldTime
	FieldDistance
	FieldVelocity
	FieldDiameter
	FieldHazardous
)

func (f Field) String() string {
	switch f {
	case FieldTime:
		return "time"
	case FieldDistance:
		return "distance"
	case FieldVelocity:
		return "velocity"
	case FieldDiameter:
		return "diameter"
	case FieldHazardous:
		return "hazardous"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Op is a binary comparison operator.
type Op int

const (
	OpEq Op = iota
	OpLe
	OpGe
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "=="
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Predicate is an immutable attribute comparison. The zero Predicate is
// invalid and fails with ErrUnsupportedCriterion when evaluated.
type Predicate struct {
	field Field
	op    Op

	floatVal float64
	timeVal  time.Time
	boolVal  bool
}

// OnTime returns a predicate comparing the approach timestamp.
func OnTime(op Op, t time.Time) Predicate {
	return Predicate{field: FieldTime, op: op, timeVal: t}
}

// OnDistance returns a predicate comparing the approach distance in au.
func OnDistance(op Op, v float64) Predicate {
	return Predicate{field: FieldDistance, op: op, floatVal: v}
}

// OnVelocity returns a predicate comparing the approach velocity in km/s.
func OnVelocity(op Op, v float64) Predicate {
	return Predicate{field: FieldVelocity, op: op, floatVal: v}
}

// OnDiameter returns a predicate comparing the linked NEO's diameter in km.
func OnDiameter(op Op, v float64) Predicate {
	return Predicate{field: FieldDiameter, op: op, floatVal: v}
}

// OnHazardous returns a predicate matching the linked NEO's hazardous flag.
func OnHazardous(v bool) Predicate {
	return Predicate{field: FieldHazardous, op: OpEq, boolVal: v}
}

// Field returns the attribute this predicate compares.
func (p Predicate) Field() Field { return p.field }

// Op returns this predicate's comparison operator.
func (p Predicate) Op() Op { return p.op }

func (p Predicate) String() string {
	switch p.field {
	case FieldTime:
		return fmt.Sprintf("time %s %s", p.op, p.timeVal.Format(neo.TimeLayout))
	case FieldHazardous:
		return fmt.Sprintf("hazardous %s %t", p.op, p.boolVal)
	default:
		return fmt.Sprintf("%s %s %v", p.field, p.op, p.floatVal)
	}
}

// Match evaluates this predicate against a single close approach. Ordering
// comparisons against an unknown (NaN) diameter are false, never an error:
// an object with no measured diameter satisfies no diameter bound.
func (p Predicate) Match(ca *neo.CloseApproach) (bool, error) {
	switch p.field {
	case FieldTime:
		return compareTime(p.op, ca.Time, p.timeVal)
	case FieldDistance:
		return compareFloat(p.op, ca.Distance, p.floatVal)
	case FieldVelocity:
		return compareFloat(p.op, ca.Velocity, p.floatVal)
	case FieldDiameter:
		return compareFloat(p.op, ca.NEO.Diameter, p.floatVal)
	case FieldHazardous:
		if p.op != OpEq {
			return false, fmt.Errorf("%w: hazardous only supports equality, got %s", ErrUnsupportedCriterion, p.op)
		}
		return ca.NEO.Hazardous == p.boolVal, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedCriterion, p.field)
	}
}

// compareFloat applies op to (got, want). NaN on either side makes every
// comparison false, matching IEEE semantics.
func compareFloat(op Op, got, want float64) (bool, error) {
	switch op {
	case OpEq:
		return got == want, nil
	case OpLe:
		return got <= want, nil
	case OpGe:
		return got >= want, nil
	default:
		return false, fmt.Errorf("%w: %s on float", ErrUnsupportedCriterion, op)
	}
}

func compareTime(op Op, got, want time.Time) (bool, error) {
	switch op {
	case OpEq:
		return got.Equal(want), nil
	case OpLe:
		return !got.After(want), nil
	case OpGe:
		return !got.Before(want), nil
	default:
		return false, fmt.Errorf("%w: %s on time", ErrUnsupportedCriterion, op)
	}
}

// Limit truncates a query result stream to at most n items. If n is zero or
// negative the stream is returned unchanged. The truncated stream stops
// pulling from upstream as soon as n items have been produced, so a small
// limit does bounded work even over a very large database.
func Limit(seq iter.Seq2[*neo.CloseApproach, error], n int) iter.Seq2[*neo.CloseApproach, error] {
	if n <= 0 {
		return seq
	}
	return func(yield func(*neo.CloseApproach, error) bool) {
		count := 0
		for ca, err := range seq {
			if !yield(ca, err) {
				return
			}
			if err != nil {
				return
			}
			count++
			if count == n {
				return
			}
		}
	}
}
