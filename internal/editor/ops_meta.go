package editor

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"proposal-engine/internal/model"
)

// customizationFields is the allow-list for update_customization. Anything
// outside it is rejected rather than silently stored.
var customizationFields = map[string]bool{
	"primaryColor":         true,
	"secondaryColor":       true,
	"accentColor":          true,
	"fontFamily":           true,
	"headerText":           true,
	"footerText":           true,
	"introMessage":         true,
	"showLogo":             true,
	"showPricingBreakdown": true,
	"theme":                true,
}

type updateCustomizationProps struct {
	Customization map[string]interface{} `json:"customization"`
}

// UpdateCustomizationHandler merges allow-listed fields into the
// customization object.
type UpdateCustomizationHandler struct{}

func (h *UpdateCustomizationHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props updateCustomizationProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid update_customization payload: %w", err)
	}
	if len(props.Customization) == 0 {
		return "", fmt.Errorf("customization is required and must not be empty")
	}

	merged := make([]string, 0, len(props.Customization))
	for field, value := range props.Customization {
		if !customizationFields[field] {
			return "", fmt.Errorf("customization field %q is not allowed; allowed fields are: %s",
				field, strings.Join(allowedCustomizationFields(), ", "))
		}
		ctx.Customization[field] = value
		merged = append(merged, field)
	}
	sort.Strings(merged)

	return fmt.Sprintf("Updated customization: %s", strings.Join(merged, ", ")), nil
}

func allowedCustomizationFields() []string {
	fields := make([]string, 0, len(customizationFields))
	for f := range customizationFields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

type updateClientInfoProps struct {
	ClientName    *string `json:"clientName"`
	ClientEmail   *string `json:"clientEmail"`
	ClientLogoURL *string `json:"clientLogoUrl"`
}

// UpdateClientInfoHandler writes client identity fields onto both the
// proposal data and the persistence-layer record view in parallel.
type UpdateClientInfoHandler struct{}

func (h *UpdateClientInfoHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props updateClientInfoProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid update_client_info payload: %w", err)
	}
	if props.ClientName == nil && props.ClientEmail == nil && props.ClientLogoURL == nil {
		return "", fmt.Errorf("at least one of clientName, clientEmail, clientLogoUrl is required")
	}

	var updated []string
	if props.ClientName != nil {
		if strings.TrimSpace(*props.ClientName) == "" {
			return "", fmt.Errorf("clientName must not be empty")
		}
		ctx.Proposal.ClientName = *props.ClientName
		ctx.Record.ClientName = *props.ClientName
		updated = append(updated, "clientName")
	}
	if props.ClientEmail != nil {
		ctx.Proposal.ClientEmail = *props.ClientEmail
		ctx.Record.ClientEmail = *props.ClientEmail
		updated = append(updated, "clientEmail")
	}
	if props.ClientLogoURL != nil {
		ctx.Proposal.ClientLogoURL = *props.ClientLogoURL
		ctx.Record.ClientLogoURL = *props.ClientLogoURL
		updated = append(updated, "clientLogoUrl")
	}

	return fmt.Sprintf("Updated client info: %s", strings.Join(updated, ", ")), nil
}

var validStatuses = []string{
	model.StatusDraft,
	model.StatusPending,
	model.StatusApproved,
	model.StatusRejected,
}

type setStatusProps struct {
	Status string `json:"status"`
}

// SetStatusHandler writes to the persistence-layer record view only; status
// is not part of the proposal data blob.
type SetStatusHandler struct{}

func (h *SetStatusHandler) Apply(ctx *Context, op *model.Operation) (string, error) {
	var props setStatusProps
	if err := json.Unmarshal(op.Raw, &props); err != nil {
		return "", fmt.Errorf("invalid set_status payload: %w", err)
	}

	valid := false
	for _, s := range validStatuses {
		if props.Status == s {
			valid = true
			break
		}
	}
	if !valid {
		return "", fmt.Errorf("invalid status %q; valid statuses are: %s",
			props.Status, strings.Join(validStatuses, ", "))
	}

	ctx.Record.Status = props.Status
	return fmt.Sprintf("Set status to %s", props.Status), nil
}
