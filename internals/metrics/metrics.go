package metrics

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gymku_backend/internals/helpers/apperr"
)

var (
	EnrollAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymku",
			Name:      "enroll_attempts_total",
			Help:      "Enroll attempts by result (ok or error kind)",
		},
		[]string{"result"},
	)

	EnrollRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gymku",
			Name:      "enroll_retries_total",
			Help:      "Enroll transactions retried after a unique-index violation",
		},
	)

	CancelAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymku",
			Name:      "cancel_attempts_total",
			Help:      "Cancel attempts by result",
		},
		[]string{"result"},
	)

	AttendanceMarks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gymku",
			Name:      "attendance_marks_total",
			Help:      "Attendance marks by result",
		},
		[]string{"result"},
	)

	EnrollDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gymku",
			Name:      "enroll_duration_seconds",
			Help:      "Time taken by the enroll transaction (including retry)",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

var registerOnce sync.Once

// Register aman dipanggil berkali-kali (test membuat app berulang).
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(EnrollAttempts, EnrollRetries, CancelAttempts, AttendanceMarks, EnrollDuration)
	})
}

// Handler: /metrics lewat adaptor net/http → fiber
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// Result: label "ok", kind apperr, atau "error".
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	if k := apperr.KindOf(err); k != "" {
		return string(k)
	}
	return "error"
}
