package model

// AssembleResult is what the assembler hands back to the persistence layer.
type AssembleResult struct {
	ProposalData  *Proposal              `json:"proposalData"`
	Customization map[string]interface{} `json:"customization"`
	ProposalType  string                 `json:"proposalType"`
}

// EditResult is the editor's output: the mutated structures plus a
// human-readable summary of what each operation changed.
type EditResult struct {
	ProposalData   *Proposal              `json:"proposalData"`
	Customization  map[string]interface{} `json:"customization"`
	ProposalRecord *ProposalRecord        `json:"proposalRecord"`
	ChangesSummary []ChangeSummary        `json:"changesSummary"`
}

type ChangeSummary struct {
	Op          string `json:"op"`
	Description string `json:"description"`
}

// ReverseResult is the reverse calculator's output. On failure Success is
// false and Error/Code describe why.
type ReverseResult struct {
	Success            bool               `json:"success"`
	ServiceType        string             `json:"serviceType,omitempty"`
	TargetAppointments int                `json:"targetAppointments,omitempty"`
	AppointmentTime    float64            `json:"appointmentTime,omitempty"`
	ApptsPerProPerHour float64            `json:"apptsPerProPerHour,omitempty"`
	Options            []StaffingOption   `json:"options,omitempty"`
	Constraints        *SearchConstraints `json:"constraints,omitempty"`
	Error              string             `json:"error,omitempty"`
	Code               string             `json:"code,omitempty"`
}

// StaffingOption is one candidate (hours, professionals) pairing.
type StaffingOption struct {
	Label              string  `json:"label"`
	NumPros            int     `json:"numPros"`
	TotalHours         float64 `json:"totalHours"`
	ActualAppointments int     `json:"actualAppointments"`
	ExactMatch         bool    `json:"exactMatch"`
	EstimatedCost      float64 `json:"estimatedCost"`
	Note               string  `json:"note,omitempty"`
	FixedPrice         bool    `json:"fixedPrice,omitempty"`
}

type SearchConstraints struct {
	ValidHourIncrements []float64 `json:"validHourIncrements"`
	MaxHours            float64   `json:"maxHours"`
	MaxPros             int       `json:"maxPros"`
}

// ErrorResponse is the JSON error body returned by the HTTP layer.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	CodeInvalidServiceType = "INVALID_SERVICE_TYPE"
	CodeInvalidTarget      = "INVALID_TARGET"
)
