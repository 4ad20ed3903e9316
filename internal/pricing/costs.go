// Package pricing implements the cost calculator and the summary
// recalculator. Both are pure except for writing computed fields back onto the
// proposal passed in.
package pricing

import (
	"math"

	"proposal-engine/internal/catalog"
	"proposal-engine/internal/model"
)

// CostResult is everything the cost calculator derives for one service.
type CostResult struct {
	TotalAppointments model.AppointmentCount
	ServiceCost       float64
	ProRevenue        float64
	OriginalPrice     float64
	RecurringDiscount float64
	RecurringSavings  float64
}

// Round2 rounds to 2 decimal places. Every monetary field is rounded at the
// point it is computed, not at output time.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApptsPerProPerHour returns how many appointments one professional completes
// per hour, 0 when appTime is unset.
func ApptsPerProPerHour(appTime float64) float64 {
	if appTime <= 0 {
		return 0
	}
	return 60 / appTime
}

// CalculateCost derives appointment count, cost, pro revenue and discount
// amounts for one fully-populated service. A non-mindfulness service missing
// its staffing fields yields all-zero results rather than an error.
func CalculateCost(s *model.Service) CostResult {
	if catalog.IsMindfulness(s.ServiceType) {
		return calcMindfulness(s)
	}

	if s.AppTime <= 0 || s.NumPros <= 0 || s.TotalHours <= 0 {
		return CostResult{}
	}

	perHour := ApptsPerProPerHour(s.AppTime)
	appointments := int(math.Floor(s.TotalHours * float64(s.NumPros) * perHour))

	var cost, revenue float64
	if catalog.IsHeadshot(s.ServiceType) {
		revenue = s.TotalHours * float64(s.NumPros) * s.ProHourly
		cost = revenue + float64(appointments)*s.RetouchingCost
	} else {
		cost = s.TotalHours * s.HourlyRate * float64(s.NumPros)
		revenue = s.TotalHours*float64(s.NumPros)*s.ProHourly + s.EarlyArrival*float64(s.NumPros)
	}

	res := CostResult{
		TotalAppointments: model.Appointments(appointments),
		ServiceCost:       Round2(cost),
		ProRevenue:        Round2(revenue),
	}
	applyDiscounts(s, &res)
	return res
}

func calcMindfulness(s *model.Service) CostResult {
	price := s.FixedPrice
	if price <= 0 {
		price = catalog.DefaultMindfulnessPrice
	}

	res := CostResult{
		TotalAppointments: model.UnlimitedAppointments,
		ServiceCost:       Round2(price),
		ProRevenue:        Round2(price * 0.30),
	}
	applyDiscounts(s, &res)
	return res
}

// applyDiscounts snapshots originalPrice, then applies the percentage discount
// and the recurring discount strictly in sequence. The recurring savings are
// computed on the already-discounted cost.
func applyDiscounts(s *model.Service, res *CostResult) {
	res.OriginalPrice = res.ServiceCost

	if s.DiscountPercent > 0 {
		res.ServiceCost = Round2(res.ServiceCost * (1 - s.DiscountPercent/100))
	}

	if s.IsRecurring && s.RecurringFrequency != nil {
		res.RecurringDiscount = RecurringDiscountPercent(s.RecurringFrequency.Occurrences)
		if res.RecurringDiscount > 0 {
			res.RecurringSavings = Round2(res.ServiceCost * res.RecurringDiscount / 100)
			res.ServiceCost = Round2(res.ServiceCost * (1 - res.RecurringDiscount/100))
		}
	}
}

// RecurringDiscountPercent maps an occurrence count to its discount tier.
func RecurringDiscountPercent(occurrences int) float64 {
	switch {
	case occurrences >= 9:
		return 20
	case occurrences >= 4:
		return 15
	default:
		return 0
	}
}

// WriteCost copies a cost result onto the service's computed fields.
func WriteCost(s *model.Service, res CostResult) {
	s.TotalAppointments = res.TotalAppointments
	s.ServiceCost = res.ServiceCost
	s.ProRevenue = res.ProRevenue
	s.OriginalPrice = res.OriginalPrice
	s.RecurringDiscount = res.RecurringDiscount
	s.RecurringSavings = res.RecurringSavings
}
