package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the import service Prometheus collectors.
type Metrics struct {
	RecordsImported prometheus.Counter
	RecordsSkipped  prometheus.Counter
	Batches         prometheus.Counter
}

// New registers and returns the collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		RecordsImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "import_records_imported_total",
			Help: "Access log rows stored from CSV exports.",
		}),
		RecordsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "import_records_skipped_total",
			Help: "Malformed CSV rows skipped during import.",
		}),
		Batches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "import_batches_total",
			Help: "Processed import batches.",
		}),
	}
}
