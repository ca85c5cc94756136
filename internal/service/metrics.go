package service

import "github.com/prometheus/client_golang/prometheus"

var (
	appointmentsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "appointments_created_total",
		Help: "Appointments created through the repository",
	})
	appointmentStatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "appointment_status_changes_total", Help: "Appointment status writes by target status"},
		[]string{"status"},
	)
	storageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "storage_failures_total", Help: "Failed document store calls by operation"},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(appointmentsCreated, appointmentStatusChanges, storageFailures)
}
