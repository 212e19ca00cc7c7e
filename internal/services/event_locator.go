package services

import (
	"math"

	"trip-route-service/internal/domain"
)

// LocateEvents assigns a route coordinate to each event of one category.
//
// Events with an explicit mile use it. Events without one are spread evenly
// by batch position: the event at index i of n lands at totalMiles*(i+1)/(n+1),
// regardless of how many other events in the batch carry explicit miles.
// Every effective mile is clamped into [0, totalMiles] before lookup.
// Events are dropped, not rejected, when the route has no points.
func LocateEvents[E domain.OperationalEvent](route domain.Route, events []E) []domain.LocatedEvent[E] {
	return locateWith(NewRouteIndex(route), events)
}

func locateWith[E domain.OperationalEvent](idx *RouteIndex, events []E) []domain.LocatedEvent[E] {
	out := make([]domain.LocatedEvent[E], 0, len(events))
	if idx.Len() == 0 {
		return out
	}

	n := len(events)
	for i, ev := range events {
		mile, ok := ev.MileAlongRoute()
		if !ok {
			mile = SynthesizedMile(idx.TotalMiles(), i, n)
		}
		mile = clampMile(mile, idx.TotalMiles())

		pos, ok := idx.LocateAtMile(mile)
		if !ok {
			continue
		}

		out = append(out, domain.LocatedEvent[E]{
			Event:    ev,
			Mile:     mile,
			Position: pos,
		})
	}

	return out
}

// SynthesizedMile is the even-distribution fallback for the event at batch
// position i of n.
func SynthesizedMile(totalMiles float64, i, n int) float64 {
	return totalMiles * float64(i+1) / float64(n+1)
}

func clampMile(mile, totalMiles float64) float64 {
	upper := totalMiles
	if math.IsNaN(upper) || upper < 0 {
		upper = 0
	}
	if math.IsNaN(mile) || mile < 0 {
		return 0
	}
	return math.Min(mile, upper)
}

// PlaceTripEvents locates the fuel stops, rest periods and violations of a
// plan against its route. Categories are placed independently.
func PlaceTripEvents(plan *domain.TripPlan) domain.TripPlacement {
	if plan == nil {
		return domain.TripPlacement{
			Fuel:       []domain.LocatedEvent[domain.FuelStop]{},
			Rest:       []domain.LocatedEvent[domain.RestPeriod]{},
			Violations: []domain.LocatedEvent[domain.Violation]{},
		}
	}

	idx := NewRouteIndex(plan.Route)

	return domain.TripPlacement{
		Fuel:       locateWith(idx, plan.FuelStops),
		Rest:       locateWith(idx, plan.RestPeriods),
		Violations: locateWith(idx, plan.Violations),
	}
}
