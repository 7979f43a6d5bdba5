package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultInserted = "inserted"
	ResultUpdated  = "updated"
	ResultFailed   = "failed"
)

// Recorder counts rows written by the seeding passes. A nil *Recorder is a no-op.
type Recorder struct {
	Rows         *prometheus.CounterVec
	PassDuration *prometheus.HistogramVec
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "commerce_seed",
		Name:      "rows_total",
		Help:      "Rows written by the seeder, by table and result.",
	}, []string{"table", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "commerce_seed",
		Name:      "pass_duration_seconds",
		Help:      "Wall time of each seeding pass.",
		Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
	}, []string{"pass"})

	reg.MustRegister(rows, duration)
	return &Recorder{Rows: rows, PassDuration: duration}
}

func (r *Recorder) Inserted(table string) {
	r.add(table, ResultInserted)
}

func (r *Recorder) Updated(table string) {
	r.add(table, ResultUpdated)
}

func (r *Recorder) Failed(table string) {
	r.add(table, ResultFailed)
}

func (r *Recorder) ObservePass(pass string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.PassDuration.WithLabelValues(pass).Observe(elapsed.Seconds())
}

func (r *Recorder) add(table, result string) {
	if r == nil {
		return
	}
	r.Rows.WithLabelValues(table, result).Inc()
}
