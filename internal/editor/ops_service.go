package editor

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"proposal-engine/internal/assembler"
	"proposal-engine/internal/catalog"
	"proposal-engine/internal/model"
	"proposal-engine/internal/pricing"
)

// AddServiceHandler resolves a new service exactly the way the assembler
// resolves an event and appends it to its day bucket, creating the location
// and date on demand.
type AddServiceHandler struct{}

func (h *AddServiceHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var ev model.Event
	if err := json.Unmarshal(op.Raw, &ev); err != nil {
		return "", fmt.Errorf("invalid add_service payload: %w", err)
	}
	if ev.ServiceType == "" {
		return "", fmt.Errorf("serviceType is required")
	}
	if !catalog.IsValidServiceType(ev.ServiceType) {
		return "", fmt.Errorf("unknown service type %q; valid types are: %s",
			ev.ServiceType, strings.Join(catalog.ValidServiceTypes(), ", "))
	}

	svc := assembler.ResolveEvent(&ev)
	pricing.WriteCost(svc, pricing.CalculateCost(svc))

	if ev.Address != "" {
		if ctx.Proposal.OfficeLocations == nil {
			ctx.Proposal.OfficeLocations = make(map[string]string)
		}
		ctx.Proposal.OfficeLocations[svc.Location] = ev.Address
	}

	bucket := ctx.ensureBucket(svc.Location, svc.Date)
	bucket.Services = append(bucket.Services, svc)

	return fmt.Sprintf("Added %s service at %s on %s", svc.ServiceType, svc.Location, svc.Date), nil
}

type removeServiceProps struct {
	Location     string `json:"location"`
	Date         string `json:"date"`
	ServiceIndex *int   `json:"serviceIndex"`
}

// RemoveServiceHandler splices a service out by index and cascades the
// empty-bucket cleanup.
type RemoveServiceHandler struct{}

func (h *RemoveServiceHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props removeServiceProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid remove_service payload: %w", err)
	}
	if props.ServiceIndex == nil {
		return "", fmt.Errorf("serviceIndex is required")
	}

	bucket, err := ctx.bucket(props.Location, props.Date)
	if err != nil {
		return "", err
	}
	idx := *props.ServiceIndex
	if idx < 0 || idx >= len(bucket.Services) {
		return "", fmt.Errorf("serviceIndex %d out of bounds for %s on %s; valid indexes are 0-%d",
			idx, props.Location, props.Date, len(bucket.Services)-1)
	}

	svc := bucket.Services[idx]
	bucket.Services = append(bucket.Services[:idx], bucket.Services[idx+1:]...)
	ctx.pruneAfterRemoval(props.Location, props.Date)

	return fmt.Sprintf("Removed %s service at %s on %s", svc.ServiceType, props.Location, props.Date), nil
}

// fieldUpdate carries one update through alias resolution: name is what the
// caller wrote, canonical is the field it resolves to.
type fieldUpdate struct {
	name      string
	canonical string
	value     interface{}
}

func isOverlayField(canonical string) bool {
	return canonical == "headshotTier" || canonical == "mindfulnessType"
}

type updateServiceProps struct {
	Location     string                 `json:"location"`
	Date         string                 `json:"date"`
	ServiceIndex *int                   `json:"serviceIndex"`
	Updates      map[string]interface{} `json:"updates"`
}

// fieldAliases maps caller-friendly field names to their canonical service
// fields. The alias table is consulted before any update is applied; a name
// that resolves to nothing in the allow-list is rejected, never stored.
var fieldAliases = map[string]string{
	"appointmentTime":   "appTime",
	"appointmentLength": "appTime",
	"proRate":           "proHourly",
	"rate":              "hourlyRate",
	"discount":          "discountPercent",
	"hours":             "totalHours",
	"pros":              "numPros",
	"professionals":     "numPros",
}

// UpdateServiceHandler applies an allow-listed field update set to one
// service. headshotTier and mindfulnessType overlay their catalog tables
// instead of being stored verbatim; other numeric fields are coerced.
type UpdateServiceHandler struct{}

func (h *UpdateServiceHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props updateServiceProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid update_service payload: %w", err)
	}
	if props.ServiceIndex == nil {
		return "", fmt.Errorf("serviceIndex is required")
	}
	if len(props.Updates) == 0 {
		return "", fmt.Errorf("updates is required and must not be empty")
	}

	svc, err := ctx.service(props.Location, props.Date, *props.ServiceIndex)
	if err != nil {
		return "", err
	}

	// Tier and subtype overlays rewrite several fields at once, so they run
	// first; the remaining fields follow in sorted order, letting an explicit
	// scalar in the same update win over whatever the overlay set.
	pending := make([]fieldUpdate, 0, len(props.Updates))
	for field, value := range props.Updates {
		canonical := field
		if alias, ok := fieldAliases[field]; ok {
			canonical = alias
		}
		pending = append(pending, fieldUpdate{name: field, canonical: canonical, value: value})
	}
	sort.Slice(pending, func(i, j int) bool {
		oi, oj := isOverlayField(pending[i].canonical), isOverlayField(pending[j].canonical)
		if oi != oj {
			return oi
		}
		return pending[i].canonical < pending[j].canonical
	})

	updated := make([]string, 0, len(pending))
	for _, u := range pending {
		if err := setServiceField(svc, u.canonical, u.value); err != nil {
			return "", fmt.Errorf("field %q: %w", u.name, err)
		}
		updated = append(updated, u.canonical)
	}
	sort.Strings(updated)

	return fmt.Sprintf("Updated %s on %s service at %s on %s",
		strings.Join(updated, ", "), svc.ServiceType, props.Location, props.Date), nil
}

func setServiceField(svc *model.Service, field string, value interface{}) error {
	switch field {
	case "appTime", "totalHours", "numPros", "proHourly", "hourlyRate",
		"earlyArrival", "retouchingCost", "discountPercent", "classLength", "fixedPrice":
		n, err := toNumber(value)
		if err != nil {
			return err
		}
		switch field {
		case "appTime":
			svc.AppTime = n
		case "totalHours":
			svc.TotalHours = n
		case "numPros":
			svc.NumPros = int(n)
		case "proHourly":
			svc.ProHourly = n
		case "hourlyRate":
			svc.HourlyRate = n
		case "earlyArrival":
			svc.EarlyArrival = n
		case "retouchingCost":
			svc.RetouchingCost = n
		case "discountPercent":
			svc.DiscountPercent = n
		case "classLength":
			svc.ClassLength = n
		case "fixedPrice":
			svc.FixedPrice = n
		}
		return nil

	case "headshotTier":
		name, err := toString(value)
		if err != nil {
			return err
		}
		tier, ok := catalog.Tier(name)
		if !ok {
			return fmt.Errorf("unknown headshot tier %q; valid tiers are: %s",
				name, strings.Join(catalog.ValidTiers(), ", "))
		}
		svc.HeadshotTier = name
		assembler.ApplyTier(svc, tier)
		return nil

	case "mindfulnessType":
		name, err := toString(value)
		if err != nil {
			return err
		}
		class, ok := catalog.Mindfulness(name)
		if !ok {
			return fmt.Errorf("unknown mindfulness type %q; valid types are: %s",
				name, strings.Join(catalog.ValidMindfulnessTypes(), ", "))
		}
		svc.MindfulnessType = name
		assembler.ApplyMindfulness(svc, class)
		return nil

	case "massageType":
		s, err := toString(value)
		if err != nil {
			return err
		}
		svc.MassageType = s
		return nil
	case "nailsType":
		s, err := toString(value)
		if err != nil {
			return err
		}
		svc.NailsType = s
		return nil
	case "participants":
		s, err := toString(value)
		if err != nil {
			return err
		}
		svc.Participants = s
		return nil

	default:
		return fmt.Errorf("field is not updatable; allowed fields are: %s", strings.Join(updatableFields(), ", "))
	}
}

func updatableFields() []string {
	fields := []string{
		"appTime", "totalHours", "numPros", "proHourly", "hourlyRate",
		"earlyArrival", "retouchingCost", "discountPercent", "classLength",
		"fixedPrice", "headshotTier", "mindfulnessType", "massageType",
		"nailsType", "participants",
	}
	for alias := range fieldAliases {
		fields = append(fields, alias)
	}
	sort.Strings(fields)
	return fields
}

type setDiscountProps struct {
	Location        string   `json:"location"`
	Date            string   `json:"date"`
	ServiceIndex    *int     `json:"serviceIndex"`
	DiscountPercent *float64 `json:"discountPercent"`
}

// SetDiscountHandler sets discountPercent on one service.
type SetDiscountHandler struct{}

func (h *SetDiscountHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props setDiscountProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid set_discount payload: %w", err)
	}
	if props.ServiceIndex == nil {
		return "", fmt.Errorf("serviceIndex is required")
	}
	if props.DiscountPercent == nil {
		return "", fmt.Errorf("discountPercent is required")
	}
	if *props.DiscountPercent < 0 || *props.DiscountPercent > 100 {
		return "", fmt.Errorf("discountPercent must be between 0 and 100")
	}

	svc, err := ctx.service(props.Location, props.Date, *props.ServiceIndex)
	if err != nil {
		return "", err
	}
	svc.DiscountPercent = *props.DiscountPercent

	return fmt.Sprintf("Set %.0f%% discount on %s service at %s on %s",
		*props.DiscountPercent, svc.ServiceType, props.Location, props.Date), nil
}
