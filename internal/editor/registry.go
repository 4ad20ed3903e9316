package editor

import "sort"

var registry = map[string]OperationHandler{
	"add_service":            &AddServiceHandler{},
	"remove_service":         &RemoveServiceHandler{},
	"update_service":         &UpdateServiceHandler{},
	"set_gratuity":           &SetGratuityHandler{},
	"remove_gratuity":        &RemoveGratuityHandler{},
	"set_recurring":          &SetRecurringHandler{},
	"remove_recurring":       &RemoveRecurringHandler{},
	"set_discount":           &SetDiscountHandler{},
	"add_pricing_options":    &AddPricingOptionsHandler{},
	"remove_pricing_options": &RemovePricingOptionsHandler{},
	"update_customization":   &UpdateCustomizationHandler{},
	"update_client_info":     &UpdateClientInfoHandler{},
	"set_status":             &SetStatusHandler{},
	"add_location":           &AddLocationHandler{},
	"remove_location":        &RemoveLocationHandler{},
	"rename_location":        &RenameLocationHandler{},
	"change_date":            &ChangeDateHandler{},
}

// ValidOperations returns the sorted operation names, used in the unknown-op
// error message.
func ValidOperations() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
