package contactimport

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	parsedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contact_import_numbers_parsed_total",
		Help: "Candidate numbers that normalized to canonical form",
	})

	rejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contact_import_numbers_rejected_total",
		Help: "Candidate numbers dropped during normalization",
	})
)
