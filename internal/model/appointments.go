package model

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// AppointmentCount is either a whole number of appointments or the literal
// string "unlimited", which mindfulness classes report because they have no
// per-appointment capacity.
type AppointmentCount struct {
	Unlimited bool
	Count     int
}

// UnlimitedAppointments is the count reported by mindfulness services.
var UnlimitedAppointments = AppointmentCount{Unlimited: true}

func Appointments(n int) AppointmentCount {
	return AppointmentCount{Count: n}
}

func (a AppointmentCount) MarshalJSON() ([]byte, error) {
	if a.Unlimited {
		return []byte(`"unlimited"`), nil
	}
	return []byte(strconv.Itoa(a.Count)), nil
}

func (a *AppointmentCount) UnmarshalJSON(b []byte) error {
	if string(b) == `"unlimited"` {
		*a = AppointmentCount{Unlimited: true}
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("totalAppointments must be a number or \"unlimited\": %w", err)
	}
	*a = AppointmentCount{Count: n}
	return nil
}

func (a AppointmentCount) String() string {
	if a.Unlimited {
		return "unlimited"
	}
	return strconv.Itoa(a.Count)
}
