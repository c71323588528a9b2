package portal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons for portal_open_rejected_total.
const (
	rejectUnknownBooking = "unknown_booking"
	rejectReagents       = "reagents"
	rejectSpawn          = "spawn"
)

var (
	openTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_open_total",
		Help: "Portal pairs opened, by reagent class",
	}, []string{"class"})

	openRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_open_rejected_total",
		Help: "Open-portal attempts that spawned nothing, by reason",
	}, []string{"reason"})

	teleportTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_teleport_total",
		Help: "Teleports through a portal entrance",
	})

	bookedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_booked_total",
		Help: "Portals recorded in a book, by book",
	}, []string{"book"})

	reagentConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_reagent_consumed_total",
		Help: "Reagent items consumed by portal opening, by item id",
	}, []string{"item_id"})
)

func bookLabel(isPrivate bool) string {
	if isPrivate {
		return "private"
	}
	return "public"
}
