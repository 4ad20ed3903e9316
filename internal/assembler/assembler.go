// Package assembler turns a flat list of requested events into a fully
// consistent proposal: catalog resolution, grouping by location and date, and
// one final recalculation pass.
package assembler

import (
	"fmt"
	"strings"

	"proposal-engine/internal/catalog"
	"proposal-engine/internal/model"
	"proposal-engine/internal/pricing"
)

// DefaultLocation is used when an event names no location at all.
const DefaultLocation = "Main Office"

// Assemble validates the request, resolves every event against the catalog,
// groups the resulting services into the location→date tree and recalculates.
func Assemble(req *model.AssembleRequest) (*model.AssembleResult, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, fmt.Errorf("clientName is required")
	}
	if len(req.Events) == 0 {
		return nil, fmt.Errorf("at least one event is required")
	}
	for i, ev := range req.Events {
		if ev.ServiceType == "" {
			return nil, fmt.Errorf("event %d is missing serviceType", i)
		}
		if !catalog.IsValidServiceType(ev.ServiceType) {
			return nil, fmt.Errorf("unknown service type %q; valid types are: %s",
				ev.ServiceType, strings.Join(catalog.ValidServiceTypes(), ", "))
		}
	}

	proposal := &model.Proposal{
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientLogoURL: req.ClientLogoURL,
		Services:      make(map[string]map[string]*model.DayBucket),
		GratuityType:  req.GratuityType,
		GratuityValue: req.GratuityValue,
	}

	hasMindfulness := false
	for i := range req.Events {
		ev := &req.Events[i]
		svc := ResolveEvent(ev)
		if catalog.IsMindfulness(svc.ServiceType) {
			hasMindfulness = true
		}

		if ev.Address != "" {
			if proposal.OfficeLocations == nil {
				proposal.OfficeLocations = make(map[string]string)
			}
			proposal.OfficeLocations[svc.Location] = ev.Address
		}

		days := proposal.Services[svc.Location]
		if days == nil {
			days = make(map[string]*model.DayBucket)
			proposal.Services[svc.Location] = days
		}
		bucket := days[svc.Date]
		if bucket == nil {
			bucket = &model.DayBucket{}
			days[svc.Date] = bucket
		}

		pricing.WriteCost(svc, pricing.CalculateCost(svc))
		bucket.Services = append(bucket.Services, svc)
	}

	pricing.Recalculate(proposal)

	proposalType := req.ProposalType
	if proposalType == "" {
		if hasMindfulness {
			proposalType = "mindfulness-program"
		} else {
			proposalType = "standard"
		}
	}

	customization := req.Customization
	if customization == nil {
		customization = map[string]interface{}{}
	}

	return &model.AssembleResult{
		ProposalData:  proposal,
		Customization: customization,
		ProposalType:  proposalType,
	}, nil
}

// ResolveEvent builds a service from an event using the catalog precedence:
// service-type default, then tier/subtype overlay, then any explicit field the
// caller supplied. Explicit values always win. The editor's add_service goes
// through the same resolution.
func ResolveEvent(ev *model.Event) *model.Service {
	defaults, _ := catalog.Defaults(ev.ServiceType)

	svc := &model.Service{
		ServiceType:    ev.ServiceType,
		AppTime:        defaults.AppTime,
		TotalHours:     defaults.TotalHours,
		NumPros:        defaults.NumPros,
		ProHourly:      defaults.ProHourly,
		HourlyRate:     defaults.HourlyRate,
		EarlyArrival:   defaults.EarlyArrival,
		RetouchingCost: defaults.RetouchingCost,
		ClassLength:    defaults.ClassLength,
		FixedPrice:     defaults.FixedPrice,

		MassageType:     ev.MassageType,
		NailsType:       ev.NailsType,
		HeadshotTier:    ev.HeadshotTier,
		MindfulnessType: ev.MindfulnessType,
		Participants:    ev.Participants,

		IsRecurring:        ev.IsRecurring,
		RecurringFrequency: ev.RecurringFrequency,
	}

	if ev.HeadshotTier != "" {
		if tier, ok := catalog.Tier(ev.HeadshotTier); ok {
			ApplyTier(svc, tier)
		}
	}
	if catalog.IsMindfulness(ev.ServiceType) && ev.MindfulnessType != "" {
		if class, ok := catalog.Mindfulness(ev.MindfulnessType); ok {
			ApplyMindfulness(svc, class)
		}
	}

	if ev.AppTime != nil {
		svc.AppTime = *ev.AppTime
	}
	if ev.TotalHours != nil {
		svc.TotalHours = *ev.TotalHours
	}
	if ev.NumPros != nil {
		svc.NumPros = *ev.NumPros
	}
	if ev.ProHourly != nil {
		svc.ProHourly = *ev.ProHourly
	}
	if ev.HourlyRate != nil {
		svc.HourlyRate = *ev.HourlyRate
	}
	if ev.EarlyArrival != nil {
		svc.EarlyArrival = *ev.EarlyArrival
	}
	if ev.RetouchingCost != nil {
		svc.RetouchingCost = *ev.RetouchingCost
	}
	if ev.DiscountPercent != nil {
		svc.DiscountPercent = *ev.DiscountPercent
	}
	if ev.ClassLength != nil {
		svc.ClassLength = *ev.ClassLength
	}
	if ev.FixedPrice != nil {
		svc.FixedPrice = *ev.FixedPrice
	}

	svc.Location = EventLocation(ev)
	svc.Date = pricing.NormalizeDate(ev.Date)

	return svc
}

// EventLocation picks locationName over location, falling back to the default.
func EventLocation(ev *model.Event) string {
	if ev.LocationName != "" {
		return ev.LocationName
	}
	if ev.Location != "" {
		return ev.Location
	}
	return DefaultLocation
}

// ApplyTier overlays headshot tier values onto a service.
func ApplyTier(svc *model.Service, tier catalog.HeadshotTier) {
	svc.AppTime = tier.AppTime
	svc.ProHourly = tier.ProHourly
	svc.RetouchingCost = tier.RetouchingCost
	svc.TotalHours = tier.TotalHours
	svc.NumPros = tier.NumPros
	svc.HourlyRate = tier.HourlyRate
	svc.EarlyArrival = tier.EarlyArrival
}

// ApplyMindfulness overlays mindfulness subtype values onto a service.
func ApplyMindfulness(svc *model.Service, class catalog.MindfulnessClass) {
	svc.ClassLength = class.ClassLength
	svc.FixedPrice = class.FixedPrice
	svc.AppTime = class.AppTime
	svc.TotalHours = class.TotalHours
}
