package reverse

import (
	"strings"
	"testing"

	"proposal-engine/internal/model"
)

func TestMassageTargetTwentyFour(t *testing.T) {
	result := Calculate(&model.ReverseRequest{
		ServiceType:        "massage",
		TargetAppointments: 24,
	})

	if !result.Success {
		t.Fatalf("expected success, got %s: %s", result.Code, result.Error)
	}
	if result.AppointmentTime != 20 || result.ApptsPerProPerHour != 3 {
		t.Fatalf("unexpected timing: appTime=%v perHour=%v", result.AppointmentTime, result.ApptsPerProPerHour)
	}
	if len(result.Options) == 0 || len(result.Options) > 5 {
		t.Fatalf("expected 1-5 options, got %d", len(result.Options))
	}

	found := false
	for _, o := range result.Options {
		if o.NumPros == 2 && o.TotalHours == 4 && o.ActualAppointments == 24 && o.ExactMatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the 2-pro 4-hour exact candidate, got %+v", result.Options)
	}
}

func TestExactMatchesSortFirst(t *testing.T) {
	result := Calculate(&model.ReverseRequest{
		ServiceType:        "massage",
		TargetAppointments: 24,
	})

	seenInexact := false
	for _, o := range result.Options {
		if !o.ExactMatch {
			seenInexact = true
		} else if seenInexact {
			t.Fatalf("exact match after inexact: %+v", result.Options)
		}
	}

	// Within each group, fewer pros come first.
	for i := 1; i < len(result.Options); i++ {
		a, b := result.Options[i-1], result.Options[i]
		if a.ExactMatch == b.ExactMatch && a.NumPros > b.NumPros {
			t.Fatalf("options not ordered by pros: %+v", result.Options)
		}
	}
}

func TestInexactCandidatesCarryNote(t *testing.T) {
	// 25 appointments at 3/pro/hour never lands exactly for most crews.
	result := Calculate(&model.ReverseRequest{
		ServiceType:        "massage",
		TargetAppointments: 25,
	})

	for _, o := range result.Options {
		if o.ExactMatch && o.Note != "" {
			t.Fatalf("exact option should carry no note: %+v", o)
		}
		if !o.ExactMatch && !strings.Contains(o.Note, "target") {
			t.Fatalf("inexact option should explain the miss: %+v", o)
		}
		if o.ActualAppointments < 25 {
			t.Fatalf("rounding up hours should never undershoot: %+v", o)
		}
	}
}

func TestDuplicateOutcomesAreDropped(t *testing.T) {
	result := Calculate(&model.ReverseRequest{
		ServiceType:        "massage",
		TargetAppointments: 24,
	})

	type key struct {
		appointments int
		cost         float64
	}
	seen := make(map[key]bool)
	for _, o := range result.Options {
		k := key{o.ActualAppointments, o.EstimatedCost}
		if seen[k] {
			t.Fatalf("duplicate (appointments, cost) candidate: %+v", result.Options)
		}
		seen[k] = true
	}
}

func TestHeadshotCostIncludesRetouching(t *testing.T) {
	result := Calculate(&model.ReverseRequest{
		ServiceType:        "headshot",
		TargetAppointments: 20,
	})

	if !result.Success {
		t.Fatalf("expected success, got %s", result.Error)
	}
	// 1 pro, 4h at 5/hr: 20 appointments, 4*400 + 20*40.
	found := false
	for _, o := range result.Options {
		if o.NumPros == 1 && o.TotalHours == 4 && o.ExactMatch {
			found = true
			if o.EstimatedCost != 2400 {
				t.Fatalf("expected cost 2400, got %v", o.EstimatedCost)
			}
		}
	}
	if !found {
		t.Fatalf("expected 1-pro 4-hour candidate, got %+v", result.Options)
	}
}

func TestOverridesApply(t *testing.T) {
	appTime := 30.0
	result := Calculate(&model.ReverseRequest{
		ServiceType:        "massage",
		TargetAppointments: 8,
		Overrides:          &model.ReverseOverrides{AppTime: &appTime},
	})

	if result.AppointmentTime != 30 || result.ApptsPerProPerHour != 2 {
		t.Fatalf("override not applied: %+v", result)
	}
}

func TestMindfulnessShortCircuits(t *testing.T) {
	result := Calculate(&model.ReverseRequest{
		ServiceType:        "mindfulness",
		TargetAppointments: 100,
	})

	if !result.Success {
		t.Fatalf("expected success, got %s", result.Error)
	}
	if len(result.Options) != 3 {
		t.Fatalf("expected the 3 class options, got %d", len(result.Options))
	}
	for _, o := range result.Options {
		if !o.FixedPrice {
			t.Fatalf("mindfulness options should be fixed price: %+v", o)
		}
	}
}

func TestUnknownServiceTypeFails(t *testing.T) {
	result := Calculate(&model.ReverseRequest{
		ServiceType:        "spa-day",
		TargetAppointments: 10,
	})

	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Code != model.CodeInvalidServiceType {
		t.Fatalf("expected %s, got %s", model.CodeInvalidServiceType, result.Code)
	}
	if !strings.Contains(result.Error, "massage") {
		t.Fatalf("error should enumerate valid types: %s", result.Error)
	}
}

func TestInvalidTargetFails(t *testing.T) {
	result := Calculate(&model.ReverseRequest{
		ServiceType:        "massage",
		TargetAppointments: 0,
	})

	if result.Success || result.Code != model.CodeInvalidTarget {
		t.Fatalf("expected %s failure, got %+v", model.CodeInvalidTarget, result)
	}
}

func TestConstraintsEchoHourIncrements(t *testing.T) {
	result := Calculate(&model.ReverseRequest{
		ServiceType:        "massage",
		TargetAppointments: 24,
	})

	c := result.Constraints
	if c == nil {
		t.Fatal("expected constraints")
	}
	if len(c.ValidHourIncrements) != 16 {
		t.Fatalf("expected 16 half-hour increments, got %d", len(c.ValidHourIncrements))
	}
	if c.ValidHourIncrements[0] != 0.5 || c.ValidHourIncrements[15] != 8.0 {
		t.Fatalf("unexpected increment bounds: %v", c.ValidHourIncrements)
	}
	if c.MaxHours != 8 || c.MaxPros != 10 {
		t.Fatalf("unexpected limits: %+v", c)
	}
}
