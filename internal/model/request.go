package model

import json "github.com/goccy/go-json"

// AssembleRequest is the raw input the assembler turns into a proposal.
type AssembleRequest struct {
	ClientName    string                 `json:"clientName"`
	ClientEmail   string                 `json:"clientEmail,omitempty"`
	ClientLogoURL string                 `json:"clientLogoUrl,omitempty"`
	Events        []Event                `json:"events"`
	GratuityType  string                 `json:"gratuityType,omitempty"`
	GratuityValue float64                `json:"gratuityValue,omitempty"`
	Customization map[string]interface{} `json:"customization,omitempty"`
	ProposalType  string                 `json:"proposalType,omitempty"`
}

// Event is one requested service before catalog resolution. Numeric fields are
// pointers so an explicitly supplied value can be told apart from an omitted
// one; explicit values win over catalog defaults and tier overlays.
type Event struct {
	ServiceType  string `json:"serviceType"`
	LocationName string `json:"locationName,omitempty"`
	Location     string `json:"location,omitempty"`
	Address      string `json:"address,omitempty"`
	Date         string `json:"date,omitempty"`

	AppTime         *float64 `json:"appTime,omitempty"`
	TotalHours      *float64 `json:"totalHours,omitempty"`
	NumPros         *int     `json:"numPros,omitempty"`
	ProHourly       *float64 `json:"proHourly,omitempty"`
	HourlyRate      *float64 `json:"hourlyRate,omitempty"`
	EarlyArrival    *float64 `json:"earlyArrival,omitempty"`
	RetouchingCost  *float64 `json:"retouchingCost,omitempty"`
	DiscountPercent *float64 `json:"discountPercent,omitempty"`
	ClassLength     *float64 `json:"classLength,omitempty"`
	FixedPrice      *float64 `json:"fixedPrice,omitempty"`

	MassageType     string `json:"massageType,omitempty"`
	NailsType       string `json:"nailsType,omitempty"`
	HeadshotTier    string `json:"headshotTier,omitempty"`
	MindfulnessType string `json:"mindfulnessType,omitempty"`
	Participants    string `json:"participants,omitempty"`

	IsRecurring        bool                `json:"isRecurring,omitempty"`
	RecurringFrequency *RecurringFrequency `json:"recurringFrequency,omitempty"`
}

// EditRequest is the editor's HTTP input: the stored proposal blob plus the
// ordered operation batch to apply against it.
type EditRequest struct {
	ProposalData   *Proposal              `json:"proposalData"`
	Customization  map[string]interface{} `json:"customization,omitempty"`
	ProposalRecord *ProposalRecord        `json:"proposalRecord,omitempty"`
	Operations     []Operation            `json:"operations"`
}

// Operation is one named editor mutation. Only the op name is decoded up
// front; each handler decodes its own payload from Raw, so an unknown op fails
// at dispatch with the full list of valid names rather than at decode time.
type Operation struct {
	Op  string
	Raw json.RawMessage
}

func (o *Operation) UnmarshalJSON(b []byte) error {
	var head struct {
		Op string `json:"op"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	o.Op = head.Op
	o.Raw = append(o.Raw[:0], b...)
	return nil
}

func (o Operation) MarshalJSON() ([]byte, error) {
	if len(o.Raw) > 0 {
		return o.Raw, nil
	}
	return json.Marshal(struct {
		Op string `json:"op"`
	}{o.Op})
}

// ReverseRequest asks the reverse calculator how to staff a target number of
// appointments.
type ReverseRequest struct {
	ServiceType        string            `json:"serviceType"`
	TargetAppointments int               `json:"targetAppointments"`
	Overrides          *ReverseOverrides `json:"overrides,omitempty"`
}

type ReverseOverrides struct {
	AppTime        *float64 `json:"appTime,omitempty"`
	HourlyRate     *float64 `json:"hourlyRate,omitempty"`
	ProHourly      *float64 `json:"proHourly,omitempty"`
	RetouchingCost *float64 `json:"retouchingCost,omitempty"`
	EarlyArrival   *float64 `json:"earlyArrival,omitempty"`
}
