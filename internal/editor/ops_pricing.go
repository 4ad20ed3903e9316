package editor

import (
	"fmt"

	json "github.com/goccy/go-json"

	"proposal-engine/internal/model"
	"proposal-engine/internal/pricing"
)

type setGratuityProps struct {
	Type  string   `json:"type"`
	Value *float64 `json:"value"`
}

// SetGratuityHandler sets a proposal-level gratuity. The amount itself is
// derived on the recalculation pass.
type SetGratuityHandler struct{}

func (h *SetGratuityHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props setGratuityProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid set_gratuity payload: %w", err)
	}
	if props.Type != model.GratuityPercentage && props.Type != model.GratuityDollar {
		return "", fmt.Errorf("gratuity type must be %q or %q, got %q",
			model.GratuityPercentage, model.GratuityDollar, props.Type)
	}
	if props.Value == nil {
		return "", fmt.Errorf("value is required")
	}

	ctx.Proposal.GratuityType = props.Type
	ctx.Proposal.GratuityValue = *props.Value

	if props.Type == model.GratuityPercentage {
		return fmt.Sprintf("Set gratuity to %.0f%%", *props.Value), nil
	}
	return fmt.Sprintf("Set gratuity to $%.2f", *props.Value), nil
}

// RemoveGratuityHandler clears the proposal-level gratuity.
type RemoveGratuityHandler struct{}

func (h *RemoveGratuityHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	ctx.Proposal.GratuityType = ""
	ctx.Proposal.GratuityValue = 0
	return "Removed gratuity", nil
}

type setRecurringProps struct {
	Location     string                    `json:"location"`
	Date         string                    `json:"date"`
	ServiceIndex *int                      `json:"serviceIndex"`
	Frequency    *model.RecurringFrequency `json:"frequency"`
}

// SetRecurringHandler marks one service as recurring. The discount tier it
// lands in is derived on recalculation from the occurrence count.
type SetRecurringHandler struct{}

func (h *SetRecurringHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props setRecurringProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid set_recurring payload: %w", err)
	}
	if props.ServiceIndex == nil {
		return "", fmt.Errorf("serviceIndex is required")
	}
	if props.Frequency == nil || props.Frequency.Type == "" {
		return "", fmt.Errorf("frequency.type is required")
	}
	if props.Frequency.Occurrences < 1 {
		return "", fmt.Errorf("frequency.occurrences must be at least 1")
	}

	svc, err := ctx.service(props.Location, props.Date, *props.ServiceIndex)
	if err != nil {
		return "", err
	}
	svc.IsRecurring = true
	svc.RecurringFrequency = props.Frequency

	return fmt.Sprintf("Set %s service at %s on %s to recur %s for %d occurrences",
		svc.ServiceType, props.Location, props.Date,
		props.Frequency.Type, props.Frequency.Occurrences), nil
}

type removeRecurringProps struct {
	Location     string `json:"location"`
	Date         string `json:"date"`
	ServiceIndex *int   `json:"serviceIndex"`
}

// RemoveRecurringHandler clears recurrence and its derived discount fields.
type RemoveRecurringHandler struct{}

func (h *RemoveRecurringHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props removeRecurringProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid remove_recurring payload: %w", err)
	}
	if props.ServiceIndex == nil {
		return "", fmt.Errorf("serviceIndex is required")
	}

	svc, err := ctx.service(props.Location, props.Date, *props.ServiceIndex)
	if err != nil {
		return "", err
	}
	svc.IsRecurring = false
	svc.RecurringFrequency = nil
	svc.RecurringDiscount = 0
	svc.RecurringSavings = 0

	return fmt.Sprintf("Removed recurrence from %s service at %s on %s",
		svc.ServiceType, props.Location, props.Date), nil
}

type pricingOptionsProps struct {
	Location     string `json:"location"`
	Date         string `json:"date"`
	ServiceIndex *int   `json:"serviceIndex"`
}

// AddPricingOptionsHandler attaches the three alternative staffing snapshots
// to one service, with the as-booked option preselected.
type AddPricingOptionsHandler struct{}

func (h *AddPricingOptionsHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props pricingOptionsProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid add_pricing_options payload: %w", err)
	}
	if props.ServiceIndex == nil {
		return "", fmt.Errorf("serviceIndex is required")
	}

	svc, err := ctx.service(props.Location, props.Date, *props.ServiceIndex)
	if err != nil {
		return "", err
	}

	svc.PricingOptions = pricing.GenerateOptions(svc)
	selected := 0
	svc.SelectedOption = &selected

	return fmt.Sprintf("Added %d pricing options to %s service at %s on %s",
		len(svc.PricingOptions), svc.ServiceType, props.Location, props.Date), nil
}

// RemovePricingOptionsHandler clears the pricing option snapshots.
type RemovePricingOptionsHandler struct{}

func (h *RemovePricingOptionsHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props pricingOptionsProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid remove_pricing_options payload: %w", err)
	}
	if props.ServiceIndex == nil {
		return "", fmt.Errorf("serviceIndex is required")
	}

	svc, err := ctx.service(props.Location, props.Date, *props.ServiceIndex)
	if err != nil {
		return "", err
	}
	svc.PricingOptions = nil
	svc.SelectedOption = nil

	return fmt.Sprintf("Removed pricing options from %s service at %s on %s",
		svc.ServiceType, props.Location, props.Date), nil
}
