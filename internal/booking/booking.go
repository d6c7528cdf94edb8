// Package booking holds the client-side model of a ZeroMonos booking:
// the status lifecycle, the pickup time slots, the pt-PT label tables
// and the audit-history parsing. The API owns the data; this package
// only interprets read-only snapshots of it.
package booking

// Status is the lifecycle state of a booking as issued by the API.
type Status string

const (
	StatusReceived   Status = "RECEIVED"
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// TimeSlot is the pickup window requested by the citizen.
type TimeSlot string

const (
	SlotEarlyMorning TimeSlot = "EARLY_MORNING"
	SlotMorning      TimeSlot = "MORNING"
	SlotAfternoon    TimeSlot = "AFTERNOON"
	SlotEvening      TimeSlot = "EVENING"
	SlotNight        TimeSlot = "NIGHT"
	SlotLateNight    TimeSlot = "LATE_NIGHT"
	SlotAnytime      TimeSlot = "ANYTIME"
)

// Booking mirrors the API's booking payload. Timestamps stay as the
// raw strings the server sent; formatting happens at render time.
type Booking struct {
	ID               string   `json:"id,omitempty"`
	Token            string   `json:"token"`
	MunicipalityName string   `json:"municipalityName"`
	Description      string   `json:"description"`
	RequestedDate    string   `json:"requestedDate"`
	TimeSlot         TimeSlot `json:"timeSlot"`
	Status           Status   `json:"status"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
	History          []string `json:"history"`
}

var statusLabels = map[Status]string{
	StatusReceived:   "Recebida",
	StatusAssigned:   "Atribuída",
	StatusInProgress: "Em Progresso",
	StatusCompleted:  "Concluída",
	StatusCancelled:  "Cancelada",
}

// Label returns the pt-PT display label, or the raw value when the
// server sent a status outside the known set.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Terminal reports whether no further transition is legal.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// BadgeTone maps a status to the badge style used across pages.
func (s Status) BadgeTone() string {
	switch s {
	case StatusInProgress:
		return "warning"
	case StatusCompleted:
		return "success"
	case StatusCancelled:
		return "error"
	default:
		return "info"
	}
}

var timeSlotLabels = map[TimeSlot]string{
	SlotEarlyMorning: "Madrugada (06:00 - 08:00)",
	SlotMorning:      "Manhã (08:00 - 12:00)",
	SlotAfternoon:    "Tarde (12:00 - 16:00)",
	SlotEvening:      "Fim de tarde (16:00 - 20:00)",
	SlotNight:        "Noite (20:00 - 22:00)",
	SlotLateNight:    "Madrugada tardia (22:00 - 06:00)",
	SlotAnytime:      "Qualquer hora",
}

// Label returns the pt-PT display label, or the raw value for an
// unrecognized slot.
func (t TimeSlot) Label() string {
	if label, ok := timeSlotLabels[t]; ok {
		return label
	}
	return string(t)
}

// TimeSlots lists the selectable slots in form order.
func TimeSlots() []TimeSlot {
	return []TimeSlot{
		SlotEarlyMorning, SlotMorning, SlotAfternoon,
		SlotEvening, SlotNight, SlotLateNight, SlotAnytime,
	}
}
