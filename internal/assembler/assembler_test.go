package assembler

import (
	"strings"
	"testing"

	"proposal-engine/internal/model"
)

func f(v float64) *float64 { return &v }

func TestAssembleSingleMassageEvent(t *testing.T) {
	req := &model.AssembleRequest{
		ClientName: "Acme Corp",
		Events: []model.Event{
			{ServiceType: "massage", LocationName: "HQ", Date: "2026-03-10"},
		},
	}

	result, err := Assemble(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := result.ProposalData
	if len(p.Locations) != 1 || p.Locations[0] != "HQ" {
		t.Fatalf("unexpected locations %v", p.Locations)
	}
	if len(p.EventDates) != 1 || p.EventDates[0] != "2026-03-10" {
		t.Fatalf("unexpected eventDates %v", p.EventDates)
	}

	bucket := p.Services["HQ"]["2026-03-10"]
	if bucket == nil || len(bucket.Services) != 1 {
		t.Fatal("expected one service at HQ on 2026-03-10")
	}

	// Catalog defaults: 4h, 2 pros, 20min slots at $135/hr.
	svc := bucket.Services[0]
	if svc.TotalAppointments.Count != 24 {
		t.Fatalf("expected 24 appointments, got %s", svc.TotalAppointments)
	}
	if svc.ServiceCost != 1080 {
		t.Fatalf("expected cost 1080, got %v", svc.ServiceCost)
	}
	if p.Summary.TotalEventCost != 1080 {
		t.Fatalf("expected total 1080, got %v", p.Summary.TotalEventCost)
	}

	if result.ProposalType != "standard" {
		t.Fatalf("expected standard proposal type, got %s", result.ProposalType)
	}
}

func TestAssembleRejectsUnknownServiceType(t *testing.T) {
	req := &model.AssembleRequest{
		ClientName: "Acme Corp",
		Events:     []model.Event{{ServiceType: "spa-day"}},
	}

	_, err := Assemble(req)
	if err == nil {
		t.Fatal("expected error for unknown service type")
	}
	if !strings.Contains(err.Error(), "spa-day") {
		t.Fatalf("error should name the bad type: %v", err)
	}
	// The error enumerates the valid service types.
	for _, want := range []string{"massage", "headshot", "mindfulness-cle"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error should list %q: %v", want, err)
		}
	}
}

func TestAssembleRequiresClientNameAndEvents(t *testing.T) {
	if _, err := Assemble(&model.AssembleRequest{
		Events: []model.Event{{ServiceType: "massage"}},
	}); err == nil {
		t.Fatal("expected error for missing clientName")
	}

	if _, err := Assemble(&model.AssembleRequest{ClientName: "Acme Corp"}); err == nil {
		t.Fatal("expected error for empty events")
	}

	if _, err := Assemble(&model.AssembleRequest{
		ClientName: "Acme Corp",
		Events:     []model.Event{{}},
	}); err == nil {
		t.Fatal("expected error for event without serviceType")
	}
}

func TestAssembleDefaultsLocationAndDate(t *testing.T) {
	req := &model.AssembleRequest{
		ClientName: "Acme Corp",
		Events: []model.Event{
			{ServiceType: "massage", Date: "whenever works"},
		},
	}

	result, err := Assemble(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := result.ProposalData
	if p.Locations[0] != DefaultLocation {
		t.Fatalf("expected default location, got %v", p.Locations)
	}
	if p.EventDates[0] != model.TBD {
		t.Fatalf("expected TBD date, got %v", p.EventDates)
	}
	if p.Services[DefaultLocation][model.TBD] == nil {
		t.Fatal("service should land in the TBD bucket")
	}
}

func TestAssemblePrecedenceExplicitOverTier(t *testing.T) {
	req := &model.AssembleRequest{
		ClientName: "Acme Corp",
		Events: []model.Event{
			{
				ServiceType:  "headshot",
				HeadshotTier: "premium",
				AppTime:      f(15), // explicit beats the tier's 12
				Date:         "2026-04-01",
			},
		},
	}

	result, err := Assemble(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc := result.ProposalData.Services[DefaultLocation]["2026-04-01"].Services[0]
	if svc.AppTime != 15 {
		t.Fatalf("explicit appTime should win, got %v", svc.AppTime)
	}
	// The rest of the tier overlay still applies.
	if svc.ProHourly != 500 || svc.RetouchingCost != 50 || svc.TotalHours != 5 {
		t.Fatalf("tier overlay incomplete: %+v", svc)
	}
	// floor(5h * 1 pro * 4/hr) = 20
	if svc.TotalAppointments.Count != 20 {
		t.Fatalf("expected 20 appointments, got %s", svc.TotalAppointments)
	}
}

func TestAssembleDerivesMindfulnessProposalType(t *testing.T) {
	req := &model.AssembleRequest{
		ClientName: "Acme Corp",
		Events: []model.Event{
			{ServiceType: "mindfulness-soles", Date: "2026-04-01"},
		},
	}

	result, err := Assemble(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ProposalType != "mindfulness-program" {
		t.Fatalf("expected mindfulness-program, got %s", result.ProposalType)
	}

	req.ProposalType = "custom"
	result, err = Assemble(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ProposalType != "custom" {
		t.Fatalf("explicit proposalType should win, got %s", result.ProposalType)
	}
}

func TestAssembleGroupsByLocationAndDate(t *testing.T) {
	req := &model.AssembleRequest{
		ClientName: "Acme Corp",
		Events: []model.Event{
			{ServiceType: "massage", LocationName: "HQ", Date: "2026-03-10"},
			{ServiceType: "facial", LocationName: "HQ", Date: "2026-03-10"},
			{ServiceType: "nails", LocationName: "Warehouse", Date: "2026-03-12", Address: "12 Dock Rd"},
		},
	}

	result, err := Assemble(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := result.ProposalData
	if len(p.Services["HQ"]["2026-03-10"].Services) != 2 {
		t.Fatal("expected two services grouped at HQ on 2026-03-10")
	}
	if len(p.Locations) != 2 {
		t.Fatalf("expected 2 locations, got %v", p.Locations)
	}
	if p.OfficeLocations["Warehouse"] != "12 Dock Rd" {
		t.Fatalf("expected warehouse address, got %v", p.OfficeLocations)
	}
	if len(p.EventDates) != 2 || p.EventDates[0] != "2026-03-10" || p.EventDates[1] != "2026-03-12" {
		t.Fatalf("unexpected eventDates %v", p.EventDates)
	}
}

func TestAssembleGratuityPassesThrough(t *testing.T) {
	req := &model.AssembleRequest{
		ClientName:    "Acme Corp",
		GratuityType:  model.GratuityPercentage,
		GratuityValue: 10,
		Events: []model.Event{
			{ServiceType: "massage", Date: "2026-03-10"},
		},
	}

	result, err := Assemble(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := result.ProposalData.Summary
	if s.GratuityAmount != 108 || s.TotalEventCost != 1188 {
		t.Fatalf("unexpected gratuity math: %+v", s)
	}
}
