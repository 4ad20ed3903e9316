package pricing

import (
	"math"
	"testing"

	"proposal-engine/internal/model"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestMassageCost(t *testing.T) {
	svc := &model.Service{
		ServiceType:  "massage",
		TotalHours:   4,
		NumPros:      2,
		AppTime:      20,
		HourlyRate:   135,
		ProHourly:    50,
		EarlyArrival: 25,
	}

	res := CalculateCost(svc)

	if res.TotalAppointments.Unlimited || res.TotalAppointments.Count != 24 {
		t.Fatalf("expected 24 appointments, got %s", res.TotalAppointments)
	}
	approx(t, "serviceCost", res.ServiceCost, 1080)
	approx(t, "proRevenue", res.ProRevenue, 450)
	approx(t, "originalPrice", res.OriginalPrice, 1080)
}

func TestHeadshotPremiumTierCost(t *testing.T) {
	svc := &model.Service{
		ServiceType:    "headshot",
		HeadshotTier:   "premium",
		TotalHours:     5,
		NumPros:        1,
		AppTime:        12,
		ProHourly:      500,
		RetouchingCost: 50,
	}

	res := CalculateCost(svc)

	if res.TotalAppointments.Count != 25 {
		t.Fatalf("expected 25 appointments, got %s", res.TotalAppointments)
	}
	approx(t, "proRevenue", res.ProRevenue, 2500)
	approx(t, "serviceCost", res.ServiceCost, 3750)
}

func TestMindfulnessCost(t *testing.T) {
	svc := &model.Service{ServiceType: "mindfulness"}

	res := CalculateCost(svc)

	if !res.TotalAppointments.Unlimited {
		t.Fatalf("expected unlimited appointments, got %s", res.TotalAppointments)
	}
	approx(t, "serviceCost", res.ServiceCost, 1375)
	approx(t, "proRevenue", res.ProRevenue, 412.5)
}

func TestMindfulnessExplicitFixedPrice(t *testing.T) {
	svc := &model.Service{ServiceType: "mindfulness-cle", FixedPrice: 2200}

	res := CalculateCost(svc)

	approx(t, "serviceCost", res.ServiceCost, 2200)
	approx(t, "proRevenue", res.ProRevenue, 660)
}

func TestMissingStaffingFieldsYieldZeros(t *testing.T) {
	svc := &model.Service{ServiceType: "massage", HourlyRate: 135}

	res := CalculateCost(svc)

	if res.TotalAppointments.Count != 0 || res.TotalAppointments.Unlimited {
		t.Fatalf("expected 0 appointments, got %s", res.TotalAppointments)
	}
	approx(t, "serviceCost", res.ServiceCost, 0)
	approx(t, "proRevenue", res.ProRevenue, 0)
	approx(t, "originalPrice", res.OriginalPrice, 0)
}

func TestRecurringDiscountTiers(t *testing.T) {
	cases := map[int]float64{3: 0, 4: 15, 8: 15, 9: 20, 50: 20}
	for occurrences, want := range cases {
		if got := RecurringDiscountPercent(occurrences); got != want {
			t.Fatalf("occurrences=%d: expected %.0f%%, got %.0f%%", occurrences, want, got)
		}
	}
}

func TestDiscountAppliedBeforeRecurringDiscount(t *testing.T) {
	svc := &model.Service{
		ServiceType:     "massage",
		TotalHours:      4,
		NumPros:         2,
		AppTime:         20,
		HourlyRate:      135,
		DiscountPercent: 10,
		IsRecurring:     true,
		RecurringFrequency: &model.RecurringFrequency{
			Type:        "monthly",
			Occurrences: 9,
		},
	}

	res := CalculateCost(svc)

	// Sequential, not summed: 1080 * 0.9 * 0.8, never 1080 * 0.7.
	approx(t, "originalPrice", res.OriginalPrice, 1080)
	approx(t, "serviceCost", res.ServiceCost, 777.6)
	approx(t, "recurringDiscount", res.RecurringDiscount, 20)
	approx(t, "recurringSavings", res.RecurringSavings, 194.4)
}

func TestRecurringWithoutFrequencyGetsNoTierDiscount(t *testing.T) {
	svc := &model.Service{
		ServiceType: "massage",
		TotalHours:  4,
		NumPros:     2,
		AppTime:     20,
		HourlyRate:  135,
		IsRecurring: true,
	}

	res := CalculateCost(svc)

	approx(t, "serviceCost", res.ServiceCost, 1080)
	approx(t, "recurringDiscount", res.RecurringDiscount, 0)
}
