package editor

import (
	"fmt"

	json "github.com/goccy/go-json"

	"proposal-engine/internal/model"
	"proposal-engine/internal/pricing"
)

type addLocationProps struct {
	Location string `json:"location"`
	Address  string `json:"address,omitempty"`
}

// AddLocationHandler creates an empty location bucket, optionally recording
// its street address.
type AddLocationHandler struct{}

func (h *AddLocationHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props addLocationProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid add_location payload: %w", err)
	}
	if props.Location == "" {
		return "", fmt.Errorf("location is required")
	}
	if _, exists := ctx.Proposal.Services[props.Location]; exists {
		return "", fmt.Errorf("location %q already exists", props.Location)
	}

	ctx.Proposal.Services[props.Location] = make(map[string]*model.DayBucket)
	ctx.Proposal.Locations = ctx.locationNames()

	if props.Address != "" {
		if ctx.Proposal.OfficeLocations == nil {
			ctx.Proposal.OfficeLocations = make(map[string]string)
		}
		ctx.Proposal.OfficeLocations[props.Location] = props.Address
	}

	return fmt.Sprintf("Added location %s", props.Location), nil
}

type removeLocationProps struct {
	Location string `json:"location"`
}

// RemoveLocationHandler deletes a location and every service under it,
// cascading the eventDates pruning.
type RemoveLocationHandler struct{}

func (h *RemoveLocationHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props removeLocationProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid remove_location payload: %w", err)
	}
	if _, err := ctx.days(props.Location); err != nil {
		return "", err
	}

	delete(ctx.Proposal.Services, props.Location)
	delete(ctx.Proposal.OfficeLocations, props.Location)
	ctx.Proposal.Locations = ctx.locationNames()
	ctx.pruneEventDates()

	return fmt.Sprintf("Removed location %s and all its services", props.Location), nil
}

type renameLocationProps struct {
	Location    string `json:"location"`
	NewLocation string `json:"newLocation"`
}

// RenameLocationHandler moves the whole nested bucket under a new key and
// rewrites every contained service's location field.
type RenameLocationHandler struct{}

func (h *RenameLocationHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props renameLocationProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid rename_location payload: %w", err)
	}
	if props.NewLocation == "" {
		return "", fmt.Errorf("newLocation is required")
	}

	days, err := ctx.days(props.Location)
	if err != nil {
		return "", err
	}
	if _, exists := ctx.Proposal.Services[props.NewLocation]; exists {
		return "", fmt.Errorf("location %q already exists", props.NewLocation)
	}

	delete(ctx.Proposal.Services, props.Location)
	ctx.Proposal.Services[props.NewLocation] = days
	for _, bucket := range days {
		for _, svc := range bucket.Services {
			svc.Location = props.NewLocation
		}
	}

	if addr, ok := ctx.Proposal.OfficeLocations[props.Location]; ok {
		delete(ctx.Proposal.OfficeLocations, props.Location)
		ctx.Proposal.OfficeLocations[props.NewLocation] = addr
	}
	ctx.Proposal.Locations = ctx.locationNames()

	return fmt.Sprintf("Renamed location %s to %s", props.Location, props.NewLocation), nil
}

type changeDateProps struct {
	Location string `json:"location"`
	Date     string `json:"date"`
	NewDate  string `json:"newDate"`
}

// ChangeDateHandler moves an entire date bucket to a new date under the same
// location. If the destination already has services the two lists are
// concatenated, not replaced.
type ChangeDateHandler struct{}

func (h *ChangeDateHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props changeDateProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid change_date payload: %w", err)
	}
	if props.NewDate == "" {
		return "", fmt.Errorf("newDate is required")
	}

	bucket, err := ctx.bucket(props.Location, props.Date)
	if err != nil {
		return "", err
	}

	newDate := pricing.NormalizeDate(props.NewDate)
	if newDate == props.Date {
		return fmt.Sprintf("Date at %s unchanged (%s)", props.Location, newDate), nil
	}

	days := ctx.Proposal.Services[props.Location]
	delete(days, props.Date)

	for _, svc := range bucket.Services {
		svc.Date = newDate
	}

	if existing, ok := days[newDate]; ok {
		existing.Services = append(existing.Services, bucket.Services...)
	} else {
		days[newDate] = bucket
	}

	ctx.pruneEventDates()
	ctx.addEventDate(newDate)

	return fmt.Sprintf("Moved services at %s from %s to %s", props.Location, props.Date, newDate), nil
}
