package pricing

import (
	"fmt"

	"proposal-engine/internal/model"
)

var optionMultipliers = []float64{1, 1.25, 1.5}

// GenerateOptions builds the three alternative staffing snapshots for a
// service: as booked, hours scaled by 1.25, and hours scaled by 1.5, each
// re-priced through the cost calculator.
func GenerateOptions(s *model.Service) []model.PricingOption {
	options := make([]model.PricingOption, 0, len(optionMultipliers))

	for i, mult := range optionMultipliers {
		variant := *s
		variant.TotalHours = s.TotalHours * mult
		variant.PricingOptions = nil
		variant.SelectedOption = nil

		res := CalculateCost(&variant)
		options = append(options, model.PricingOption{
			Label:             fmt.Sprintf("Option %d", i+1),
			TotalHours:        variant.TotalHours,
			NumPros:           variant.NumPros,
			TotalAppointments: res.TotalAppointments,
			ServiceCost:       res.ServiceCost,
			ProRevenue:        res.ProRevenue,
		})
	}

	return options
}
