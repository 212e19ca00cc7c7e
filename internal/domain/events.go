package domain

import "time"

// EventKind tags the category of an operational event.
type EventKind string

const (
	EventFuel      EventKind = "fuel"
	EventRest      EventKind = "rest"
	EventViolation EventKind = "violation"
)

// OperationalEvent is implemented by FuelStop, RestPeriod and Violation.
// MileAlongRoute reports the upstream mile offset, and false when the
// plan-route service did not supply one.
type OperationalEvent interface {
	Kind() EventKind
	MileAlongRoute() (float64, bool)
}

// A scheduled refuelling stop. The upstream simulator always places fuel
// stops at an explicit mile.
type FuelStop struct {
	Mile float64
	ETA  time.Time
}

func (f FuelStop) Kind() EventKind { return EventFuel }

func (f FuelStop) MileAlongRoute() (float64, bool) { return f.Mile, true }

// An off-duty period taken from the daily HOS timeline.
type RestPeriod struct {
	Mile  *float64
	Start time.Time
	End   time.Time
	Note  *string
}

func (r RestPeriod) Kind() EventKind { return EventRest }

func (r RestPeriod) MileAlongRoute() (float64, bool) { return optionalMile(r.Mile) }

func (r RestPeriod) Duration() time.Duration { return r.End.Sub(r.Start) }

// An HOS rule violation reported by the simulator (e.g. CYCLE_LIMIT_EXCEEDED).
type Violation struct {
	Mile *float64
	Type string
	Note *string
	Time *time.Time
}

func (v Violation) Kind() EventKind { return EventViolation }

func (v Violation) MileAlongRoute() (float64, bool) { return optionalMile(v.Mile) }

func optionalMile(m *float64) (float64, bool) {
	if m == nil {
		return 0, false
	}
	return *m, true
}

// An operational event enriched with the coordinate it is drawn at.
// Mile is the effective mile used for placement (explicit or synthesized,
// after clamping).
type LocatedEvent[E OperationalEvent] struct {
	Event    E
	Mile     float64
	Position Coordinate
}

// All located markers for one planning result, per category, in upstream order.
type TripPlacement struct {
	Fuel       []LocatedEvent[FuelStop]
	Rest       []LocatedEvent[RestPeriod]
	Violations []LocatedEvent[Violation]
}
