package model

// Proposal is the root aggregate. It is created once by the assembler and then
// mutated in place by editor operations; every computed field on it is owned by
// the recalculator and replaced wholesale on each pass.
type Proposal struct {
	ClientName      string                           `json:"clientName"`
	ClientEmail     string                           `json:"clientEmail,omitempty"`
	ClientLogoURL   string                           `json:"clientLogoUrl,omitempty"`
	Locations       []string                         `json:"locations"`
	EventDates      []string                         `json:"eventDates"`
	OfficeLocations map[string]string                `json:"officeLocations,omitempty"`
	Services        map[string]map[string]*DayBucket `json:"services"`
	GratuityType    string                           `json:"gratuityType,omitempty"`
	GratuityValue   float64                          `json:"gratuityValue,omitempty"`
	Summary         Summary                          `json:"summary"`
}

// DayBucket groups the services booked at one location on one date.
type DayBucket struct {
	Services          []*Service `json:"services"`
	TotalCost         float64    `json:"totalCost"`
	TotalAppointments int        `json:"totalAppointments"`
}

// Summary holds the proposal-level aggregates. Written only by the
// recalculator, never patched incrementally.
type Summary struct {
	TotalAppointments      int     `json:"totalAppointments"`
	TotalEventCost         float64 `json:"totalEventCost"`
	TotalProRevenue        float64 `json:"totalProRevenue"`
	NetProfit              float64 `json:"netProfit"`
	ProfitMargin           float64 `json:"profitMargin"`
	GratuityAmount         float64 `json:"gratuityAmount"`
	SubtotalBeforeGratuity float64 `json:"subtotalBeforeGratuity"`
}

// Service is one line of work at one location/date. Its only identity is its
// index within the day bucket, which shifts when earlier entries are removed.
type Service struct {
	ServiceType string `json:"serviceType"`
	Location    string `json:"location,omitempty"`
	Date        string `json:"date,omitempty"`

	AppTime         float64 `json:"appTime,omitempty"`
	TotalHours      float64 `json:"totalHours,omitempty"`
	NumPros         int     `json:"numPros,omitempty"`
	ProHourly       float64 `json:"proHourly,omitempty"`
	HourlyRate      float64 `json:"hourlyRate,omitempty"`
	EarlyArrival    float64 `json:"earlyArrival,omitempty"`
	RetouchingCost  float64 `json:"retouchingCost,omitempty"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`

	MassageType     string  `json:"massageType,omitempty"`
	NailsType       string  `json:"nailsType,omitempty"`
	HeadshotTier    string  `json:"headshotTier,omitempty"`
	MindfulnessType string  `json:"mindfulnessType,omitempty"`
	ClassLength     float64 `json:"classLength,omitempty"`
	Participants    string  `json:"participants,omitempty"`
	FixedPrice      float64 `json:"fixedPrice,omitempty"`

	IsRecurring        bool                `json:"isRecurring,omitempty"`
	RecurringFrequency *RecurringFrequency `json:"recurringFrequency,omitempty"`

	// Computed fields, written back by the cost calculator on every
	// recalculation pass.
	TotalAppointments AppointmentCount `json:"totalAppointments"`
	ServiceCost       float64          `json:"serviceCost"`
	ProRevenue        float64          `json:"proRevenue"`
	OriginalPrice     float64          `json:"originalPrice"`
	RecurringDiscount float64          `json:"recurringDiscount,omitempty"`
	RecurringSavings  float64          `json:"recurringSavings,omitempty"`

	PricingOptions []PricingOption `json:"pricingOptions,omitempty"`
	SelectedOption *int            `json:"selectedOption,omitempty"`
}

type RecurringFrequency struct {
	Type        string `json:"type"`
	Occurrences int    `json:"occurrences"`
}

// PricingOption is one alternative staffing/cost snapshot for a service.
type PricingOption struct {
	Label             string           `json:"label"`
	TotalHours        float64          `json:"totalHours"`
	NumPros           int              `json:"numPros"`
	TotalAppointments AppointmentCount `json:"totalAppointments"`
	ServiceCost       float64          `json:"serviceCost"`
	ProRevenue        float64          `json:"proRevenue"`
}

// ProposalRecord is the minimal persistence-layer view the editor updates in
// parallel with the proposal data.
type ProposalRecord struct {
	Status        string `json:"status"`
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientLogoURL string `json:"client_logo_url"`
}

const (
	GratuityPercentage = "percentage"
	GratuityDollar     = "dollar"
)

const (
	StatusDraft    = "draft"
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// TBD is the placeholder date for events whose date is unknown or unparseable.
const TBD = "TBD"
