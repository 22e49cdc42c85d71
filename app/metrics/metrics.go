package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crewpush_uploads_total",
		Help: "Device uploads processed, by table.",
	}, []string{"table"})

	DuplicateAttendance = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crewpush_duplicate_attendance_total",
		Help: "ATTLOG records dropped by the dedup key.",
	})

	CommandsDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crewpush_commands_delivered_total",
		Help: "Commands written into getrequest responses.",
	})

	CommandsAcknowledged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crewpush_commands_acknowledged_total",
		Help: "Command returns applied from devicecmd.",
	})

	Reconciliations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "crewpush_reconciliations_total",
		Help: "Flight assignments reconciled from attendance events.",
	})
)

func init() {
	prometheus.MustRegister(
		UploadsTotal,
		DuplicateAttendance,
		CommandsDelivered,
		CommandsAcknowledged,
		Reconciliations,
	)
}
