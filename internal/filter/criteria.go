package filter

import "time"

// Criteria is the sparse query configuration surface. Every option is
// independently optional; nil means unset and contributes no predicate.
// Date-valued options carry a civil date — only the year, month, and day
// are significant.
//
// Hazardous is a *bool so that an explicit "not hazardous" query is
// distinct from leaving the flag unset.
type Criteria struct {
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time

	DistanceMin *float64
	DistanceMax *float64
	VelocityMin *float64
	VelocityMax *float64
	DiameterMin *float64
	DiameterMax *float64

	Hazardous *bool
}

// Build assembles the predicate list for a set of criteria. An exact Date
// expands into the same closed minute-resolution range [00:00, 23:59] that
// StartDate and EndDate produce individually, so date=D is equivalent to
// start_date=D AND end_date=D. Date and StartDate/EndDate may be combined;
// the conjunction simply yields nothing when they are inconsistent. The
// output order follows the option order above but carries no semantics —
// predicates are conjoined.
func Build(c Criteria) []Predicate {
	var preds []Predicate

	if c.Date != nil {
		preds = append(preds,
			OnTime(OpGe, startOfDay(*c.Date)),
			OnTime(OpLe, endOfDay(*c.Date)),
		)
	}
	if c.StartDate != nil {
		preds = append(preds, OnTime(OpGe, startOfDay(*c.StartDate)))
	}
	if c.EndDate != nil {
		preds = append(preds, OnTime(OpLe, endOfDay(*c.EndDate)))
	}
	if c.DistanceMin != nil {
		preds = append(preds, OnDistance(OpGe, *c.DistanceMin))
	}
	if c.DistanceMax != nil {
		preds = append(preds, OnDistance(OpLe, *c.DistanceMax))
	}
	if c.VelocityMin != nil {
		preds = append(preds, OnVelocity(OpGe, *c.VelocityMin))
	}
	if c.VelocityMax != nil {
		preds = append(preds, OnVelocity(OpLe, *c.VelocityMax))
	}
	if c.DiameterMin != nil {
		preds = append(preds, OnDiameter(OpGe, *c.DiameterMin))
	}
	if c.DiameterMax != nil {
		preds = append(preds, OnDiameter(OpLe, *c.DiameterMax))
	}
	if c.Hazardous != nil {
		preds = append(preds, OnHazardous(*c.Hazardous))
	}

	return preds
}

// startOfDay returns 00:00 UTC on d's calendar day.
func startOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// endOfDay returns 23:59 UTC on d's calendar day — the last representable
// instant at the dataset's minute resolution.
func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 0, 0, time.UTC)
}
