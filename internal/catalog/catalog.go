// Package catalog holds the static pricing tables: per-service-type defaults,
// headshot tier overrides, and mindfulness class subtypes. The tables are
// baked in at startup and never mutated.
package catalog

import (
	"sort"
	"strings"
)

// ServiceDefaults are the staffing/pricing values a service starts from before
// tier overlays and explicit caller fields are applied.
type ServiceDefaults struct {
	AppTime        float64
	TotalHours     float64
	NumPros        int
	ProHourly      float64
	HourlyRate     float64
	EarlyArrival   float64
	RetouchingCost float64
	ClassLength    float64
	FixedPrice     float64
}

// HeadshotTier overrides the headshot defaults for one package level.
type HeadshotTier struct {
	AppTime        float64
	ProHourly      float64
	RetouchingCost float64
	TotalHours     float64
	NumPros        int
	HourlyRate     float64
	EarlyArrival   float64
}

// MindfulnessClass describes one mindfulness subtype.
type MindfulnessClass struct {
	ClassLength float64
	FixedPrice  float64
	AppTime     float64
	TotalHours  float64
}

// DefaultMindfulnessPrice applies when a mindfulness service carries no
// subtype and no explicit fixedPrice.
const DefaultMindfulnessPrice = 1375

var serviceDefaults = map[string]ServiceDefaults{
	"massage": {AppTime: 20, TotalHours: 4, NumPros: 2, ProHourly: 50, HourlyRate: 135, EarlyArrival: 25},
	"facial":  {AppTime: 20, TotalHours: 4, NumPros: 2, ProHourly: 50, HourlyRate: 135, EarlyArrival: 25},
	"hair":    {AppTime: 30, TotalHours: 4, NumPros: 2, ProHourly: 50, HourlyRate: 125, EarlyArrival: 25},
	"nails":   {AppTime: 30, TotalHours: 4, NumPros: 2, ProHourly: 50, HourlyRate: 125, EarlyArrival: 25},
	"makeup":  {AppTime: 30, TotalHours: 4, NumPros: 2, ProHourly: 50, HourlyRate: 125, EarlyArrival: 25},

	"hair-makeup": {AppTime: 30, TotalHours: 4, NumPros: 2, ProHourly: 60, HourlyRate: 150, EarlyArrival: 25},

	"headshot":             {AppTime: 12, TotalHours: 4, NumPros: 1, ProHourly: 400, RetouchingCost: 40},
	"headshot-hair-makeup": {AppTime: 15, TotalHours: 4, NumPros: 2, ProHourly: 400, RetouchingCost: 40},

	"mindfulness":                {ClassLength: 60, FixedPrice: 1375, AppTime: 60, TotalHours: 1},
	"mindfulness-soles":          {ClassLength: 60, FixedPrice: 1375, AppTime: 60, TotalHours: 1},
	"mindfulness-movement":       {ClassLength: 60, FixedPrice: 1375, AppTime: 60, TotalHours: 1},
	"mindfulness-pro":            {ClassLength: 60, FixedPrice: 1800, AppTime: 60, TotalHours: 1},
	"mindfulness-cle":            {ClassLength: 90, FixedPrice: 2200, AppTime: 90, TotalHours: 1.5},
	"mindfulness-pro-reactivity": {ClassLength: 60, FixedPrice: 1800, AppTime: 60, TotalHours: 1},
}

var headshotTiers = map[string]HeadshotTier{
	"basic":     {AppTime: 10, ProHourly: 300, RetouchingCost: 25, TotalHours: 4, NumPros: 1},
	"premium":   {AppTime: 12, ProHourly: 500, RetouchingCost: 50, TotalHours: 5, NumPros: 1},
	"executive": {AppTime: 15, ProHourly: 650, RetouchingCost: 75, TotalHours: 5, NumPros: 1},
}

var mindfulnessClasses = map[string]MindfulnessClass{
	"intro":            {ClassLength: 30, FixedPrice: 950, AppTime: 30, TotalHours: 0.5},
	"drop-in":          {ClassLength: 45, FixedPrice: 1150, AppTime: 45, TotalHours: 0.75},
	"mindful-movement": {ClassLength: 60, FixedPrice: 1375, AppTime: 60, TotalHours: 1},
}

// Defaults returns the base values for a service type.
func Defaults(serviceType string) (ServiceDefaults, bool) {
	d, ok := serviceDefaults[serviceType]
	return d, ok
}

// Tier returns the headshot tier overrides for a tier name.
func Tier(name string) (HeadshotTier, bool) {
	t, ok := headshotTiers[name]
	return t, ok
}

// Mindfulness returns the class overrides for a mindfulness subtype.
func Mindfulness(name string) (MindfulnessClass, bool) {
	c, ok := mindfulnessClasses[name]
	return c, ok
}

// IsValidServiceType reports whether the type is in the catalog.
func IsValidServiceType(serviceType string) bool {
	_, ok := serviceDefaults[serviceType]
	return ok
}

// IsMindfulness reports whether a service type belongs to the mindfulness
// family, which prices as a fixed-fee class rather than per appointment.
func IsMindfulness(serviceType string) bool {
	return strings.HasPrefix(serviceType, "mindfulness")
}

// IsHeadshot reports whether a service type belongs to the headshot family,
// which adds per-appointment retouching on top of pro time.
func IsHeadshot(serviceType string) bool {
	return strings.HasPrefix(serviceType, "headshot")
}

// ValidServiceTypes returns the sorted list of catalog service types, used in
// validation error messages.
func ValidServiceTypes() []string {
	types := make([]string, 0, len(serviceDefaults))
	for t := range serviceDefaults {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ValidTiers returns the sorted headshot tier names.
func ValidTiers() []string {
	names := make([]string, 0, len(headshotTiers))
	for n := range headshotTiers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ValidMindfulnessTypes returns the sorted mindfulness subtype names.
func ValidMindfulnessTypes() []string {
	names := make([]string, 0, len(mindfulnessClasses))
	for n := range mindfulnessClasses {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MindfulnessClassNames returns the subtype names in a stable order, cheapest
// first, for the reverse calculator's fixed-price listing.
func MindfulnessClassNames() []string {
	names := ValidMindfulnessTypes()
	sort.Slice(names, func(i, j int) bool {
		return mindfulnessClasses[names[i]].FixedPrice < mindfulnessClasses[names[j]].FixedPrice
	})
	return names
}
