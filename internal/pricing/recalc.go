package pricing

import (
	"sort"

	"proposal-engine/internal/catalog"
	"proposal-engine/internal/model"
)

// Recalculate walks the whole proposal, re-prices every service, re-derives
// the day and proposal aggregates, rebuilds locations and eventDates from the
// services tree, applies gratuity, and replaces the summary wholesale. It is
// the single source of truth for computed fields: the assembler and the editor
// both finish by calling it, and running it twice is a no-op.
func Recalculate(p *model.Proposal) *model.Proposal {
	var (
		totalAppointments int
		totalCost         float64
		totalRevenue      float64
	)

	dateSet := make(map[string]bool)

	for location, days := range p.Services {
		for date, bucket := range days {
			bucket.TotalCost = 0
			bucket.TotalAppointments = 0

			for _, svc := range bucket.Services {
				svc.Location = location
				svc.Date = date
				syncMindfulness(svc)

				res := CalculateCost(svc)
				WriteCost(svc, res)

				bucket.TotalCost = Round2(bucket.TotalCost + res.ServiceCost)
				if !res.TotalAppointments.Unlimited {
					bucket.TotalAppointments += res.TotalAppointments.Count
				}
				totalRevenue = Round2(totalRevenue + res.ProRevenue)
			}

			totalAppointments += bucket.TotalAppointments
			totalCost = Round2(totalCost + bucket.TotalCost)
			dateSet[date] = true
		}
	}

	p.Locations = locationKeys(p.Services)

	p.EventDates = p.EventDates[:0]
	for date := range dateSet {
		p.EventDates = append(p.EventDates, date)
	}
	SortDates(p.EventDates)

	subtotal := totalCost
	var gratuity float64
	switch p.GratuityType {
	case model.GratuityPercentage:
		gratuity = Round2(subtotal * p.GratuityValue / 100)
	case model.GratuityDollar:
		gratuity = Round2(p.GratuityValue)
	}

	netProfit := Round2(subtotal - totalRevenue)
	var margin float64
	if subtotal != 0 {
		margin = Round2(netProfit / subtotal * 100)
	}

	p.Summary = model.Summary{
		TotalAppointments:      totalAppointments,
		TotalEventCost:         Round2(subtotal + gratuity),
		TotalProRevenue:        totalRevenue,
		NetProfit:              netProfit,
		ProfitMargin:           margin,
		GratuityAmount:         gratuity,
		SubtotalBeforeGratuity: subtotal,
	}

	return p
}

// syncMindfulness re-resolves classLength and fixedPrice from the subtype
// table before costing, so a mindfulnessType change takes effect on the next
// recalculation without the caller restating derived numbers.
func syncMindfulness(s *model.Service) {
	if !catalog.IsMindfulness(s.ServiceType) || s.MindfulnessType == "" {
		return
	}
	class, ok := catalog.Mindfulness(s.MindfulnessType)
	if !ok {
		return
	}
	if s.ClassLength <= 0 {
		s.ClassLength = class.ClassLength
	}
	if s.FixedPrice <= 0 {
		s.FixedPrice = class.FixedPrice
	}
}

func locationKeys(services map[string]map[string]*model.DayBucket) []string {
	keys := make([]string, 0, len(services))
	for loc := range services {
		keys = append(keys, loc)
	}
	sort.Strings(keys)
	return keys
}
