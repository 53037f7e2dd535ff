package filter

import (
	"testing"
	"time"

	"github.com/papapumpkin/perigee/internal/neo"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	if preds := Build(Criteria{}); len(preds) != 0 {
		t.Errorf("Build(empty) produced %d predicates, want 0", len(preds))
	}
}

func TestBuildSingleOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		criteria  Criteria
		wantCount int
		wantField Field
		wantOp    Op
	}{
		{"start date", Criteria{StartDate: datePtr(2020, time.January, 1)}, 1, FieldTime, OpGe},
		{"end date", Criteria{EndDate: datePtr(2020, time.January, 1)}, 1, FieldTime, OpLe},
		{"distance min", Criteria{DistanceMin: floatPtr(0.1)}, 1, FieldDistance, OpGe},
		{"distance max", Criteria{DistanceMax: floatPtr(0.5)}, 1, FieldDistance, OpLe},
		{"velocity min", Criteria{VelocityMin: floatPtr(10)}, 1, FieldVelocity, OpGe},
		{"velocity max", Criteria{VelocityMax: floatPtr(30)}, 1, FieldVelocity, OpLe},
		{"diameter min", Criteria{DiameterMin: floatPtr(0.5)}, 1, FieldDiameter, OpGe},
		{"diameter max", Criteria{DiameterMax: floatPtr(2.0)}, 1, FieldDiameter, OpLe},
		{"hazardous", Criteria{Hazardous: boolPtr(true)}, 1, FieldHazardous, OpEq},
		{"not hazardous", Criteria{Hazardous: boolPtr(false)}, 1, FieldHazardous, OpEq},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			preds := Build(tt.criteria)
			if len(preds) != tt.wantCount {
				t.Fatalf("Build produced %d predicates, want %d", len(preds), tt.wantCount)
			}
			if preds[0].Field() != tt.wantField {
				t.Errorf("field = %s, want %s", preds[0].Field(), tt.wantField)
			}
			if preds[0].Op() != tt.wantOp {
				t.Errorf("op = %s, want %s", preds[0].Op(), tt.wantOp)
			}
		})
	}
}

func TestBuildCombined(t *testing.T) {
	t.Parallel()

	// Date and start/end may coexist; every derived predicate is present.
	preds := Build(Criteria{
		Date:        datePtr(2020, time.January, 1),
		StartDate:   datePtr(2020, time.February, 1),
		EndDate:     datePtr(2020, time.March, 1),
		DistanceMax: floatPtr(0.5),
		Hazardous:   boolPtr(true),
	})
	if len(preds) != 6 {
		t.Errorf("Build produced %d predicates, want 6 (2 from date + 4)", len(preds))
	}
}

func TestBuildDateExpansion(t *testing.T) {
	t.Parallel()

	// An exact date must produce the same predicate set as start+end on the
	// same day, order aside.
	fromDate := Build(Criteria{Date: datePtr(2020, time.January, 1)})
	fromRange := Build(Criteria{
		StartDate: datePtr(2020, time.January, 1),
		EndDate:   datePtr(2020, time.January, 1),
	})

	if len(fromDate) != 2 || len(fromRange) != 2 {
		t.Fatalf("predicate counts = %d and %d, want 2 and 2", len(fromDate), len(fromRange))
	}
	if fromDate[0] != fromRange[0] || fromDate[1] != fromRange[1] {
		t.Errorf("date expansion %v differs from start/end range %v", fromDate, fromRange)
	}
}

func TestBuildDateRangeBounds(t *testing.T) {
	t.Parallel()

	ca := approach(t, "2020-01-01 00:30", 0.5, 10, 1, false)
	early := approach(t, "2019-12-31 23:59", 0.5, 10, 1, false)
	late := approach(t, "2020-01-02 00:00", 0.5, 10, 1, false)

	preds := Build(Criteria{Date: datePtr(2020, time.January, 1)})

	conj := func(target *neo.CloseApproach) bool {
		t.Helper()
		for _, p := range preds {
			ok, err := p.Match(target)
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if !ok {
				return false
			}
		}
		return true
	}

	if !conj(ca) {
		t.Error("approach within the day did not match the date criterion")
	}
	if conj(early) {
		t.Error("approach the minute before midnight matched the date criterion")
	}
	if conj(late) {
		t.Error("approach at midnight the next day matched the date criterion")
	}
}
