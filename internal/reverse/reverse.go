// Package reverse answers "how do I staff X appointments?": a constrained
// search over (professionals, hours) pairings ranked by exactness and
// logistics simplicity.
package reverse

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"proposal-engine/internal/catalog"
	"proposal-engine/internal/model"
	"proposal-engine/internal/pricing"
)

const (
	maxPros       = 10
	maxHours      = 8.0
	minHours      = 0.5
	hourIncrement = 0.5
	topOptions    = 5
)

// Calculate searches staffing combinations for the target appointment count.
// Failures are reported in the result envelope, not as Go errors, since the
// caller forwards it verbatim.
func Calculate(req *model.ReverseRequest) *model.ReverseResult {
	if !catalog.IsValidServiceType(req.ServiceType) {
		return &model.ReverseResult{
			Success: false,
			Code:    model.CodeInvalidServiceType,
			Error: fmt.Sprintf("unknown service type %q; valid types are: %s",
				req.ServiceType, strings.Join(catalog.ValidServiceTypes(), ", ")),
		}
	}

	// Mindfulness has no appointment-count lever: classes are fixed-price
	// with unlimited participation, so just list the class options.
	if catalog.IsMindfulness(req.ServiceType) {
		return mindfulnessOptions(req)
	}

	if req.TargetAppointments < 1 {
		return &model.ReverseResult{
			Success: false,
			Code:    model.CodeInvalidTarget,
			Error:   "targetAppointments must be at least 1",
		}
	}

	defaults, _ := catalog.Defaults(req.ServiceType)
	appTime := defaults.AppTime
	hourlyRate := defaults.HourlyRate
	proHourly := defaults.ProHourly
	retouching := defaults.RetouchingCost
	earlyArrival := defaults.EarlyArrival
	if o := req.Overrides; o != nil {
		if o.AppTime != nil {
			appTime = *o.AppTime
		}
		if o.HourlyRate != nil {
			hourlyRate = *o.HourlyRate
		}
		if o.ProHourly != nil {
			proHourly = *o.ProHourly
		}
		if o.RetouchingCost != nil {
			retouching = *o.RetouchingCost
		}
		if o.EarlyArrival != nil {
			earlyArrival = *o.EarlyArrival
		}
	}

	perHour := pricing.ApptsPerProPerHour(appTime)
	if perHour <= 0 {
		return &model.ReverseResult{
			Success: false,
			Code:    model.CodeInvalidTarget,
			Error:   fmt.Sprintf("service type %q has no appointment time configured", req.ServiceType),
		}
	}

	target := req.TargetAppointments
	var candidates []model.StaffingOption

	for numPros := 1; numPros <= maxPros; numPros++ {
		exactHours := float64(target) / (float64(numPros) * perHour)
		if exactHours > maxHours || exactHours < minHours {
			continue
		}

		// Round up to the next half hour; bookings are sold in 0.5h blocks.
		hours := math.Ceil(exactHours/hourIncrement) * hourIncrement
		if hours > maxHours {
			continue
		}

		actual := int(math.Floor(hours * float64(numPros) * perHour))
		exact := actual == target

		// The per-pro arrival fee is part of the estimate so crews of
		// different sizes covering the same appointments price distinctly.
		var cost float64
		if catalog.IsHeadshot(req.ServiceType) {
			cost = hours*float64(numPros)*proHourly + float64(actual)*retouching
		} else {
			cost = hours*hourlyRate*float64(numPros) + earlyArrival*float64(numPros)
		}

		option := model.StaffingOption{
			Label:              fmt.Sprintf("%d pro(s) for %.1f hours", numPros, hours),
			NumPros:            numPros,
			TotalHours:         hours,
			ActualAppointments: actual,
			ExactMatch:         exact,
			EstimatedCost:      pricing.Round2(cost),
		}
		if !exact {
			diff := actual - target
			if diff > 0 {
				option.Note = fmt.Sprintf("%d appointment(s) over target", diff)
			} else {
				option.Note = fmt.Sprintf("%d appointment(s) under target", -diff)
			}
		}
		candidates = append(candidates, option)
	}

	// Exact matches first, then fewer professionals as the simpler-logistics
	// tie-break. Candidates were generated in ascending numPros order, so a
	// stable sort on exactness alone would also work.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].ExactMatch != candidates[j].ExactMatch {
			return candidates[i].ExactMatch
		}
		return candidates[i].NumPros < candidates[j].NumPros
	})

	candidates = dedupe(candidates)
	if len(candidates) > topOptions {
		candidates = candidates[:topOptions]
	}

	return &model.ReverseResult{
		Success:            true,
		ServiceType:        req.ServiceType,
		TargetAppointments: target,
		AppointmentTime:    appTime,
		ApptsPerProPerHour: perHour,
		Options:            candidates,
		Constraints:        constraints(),
	}
}

// dedupe drops candidates sharing (actualAppointments, estimatedCost),
// keeping the first occurrence, which is already the lowest-pros one.
func dedupe(options []model.StaffingOption) []model.StaffingOption {
	type key struct {
		appointments int
		cost         float64
	}
	seen := make(map[key]bool, len(options))
	kept := options[:0]
	for _, o := range options {
		k := key{o.ActualAppointments, o.EstimatedCost}
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, o)
	}
	return kept
}

func mindfulnessOptions(req *model.ReverseRequest) *model.ReverseResult {
	var options []model.StaffingOption
	for _, name := range catalog.MindfulnessClassNames() {
		class, _ := catalog.Mindfulness(name)
		options = append(options, model.StaffingOption{
			Label:         fmt.Sprintf("%s class (%.0f min)", name, class.ClassLength),
			NumPros:       1,
			TotalHours:    class.TotalHours,
			ExactMatch:    true,
			EstimatedCost: pricing.Round2(class.FixedPrice),
			FixedPrice:    true,
			Note:          "unlimited participants",
		})
	}

	return &model.ReverseResult{
		Success:            true,
		ServiceType:        req.ServiceType,
		TargetAppointments: req.TargetAppointments,
		Options:            options,
		Constraints:        constraints(),
	}
}

func constraints() *model.SearchConstraints {
	increments := make([]float64, 0, int(maxHours/hourIncrement))
	for h := minHours; h <= maxHours; h += hourIncrement {
		increments = append(increments, h)
	}
	return &model.SearchConstraints{
		ValidHourIncrements: increments,
		MaxHours:            maxHours,
		MaxPros:             maxPros,
	}
}
