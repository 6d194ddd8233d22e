package mempool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusAcceptedTransactions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blockminer",
		Subsystem: "mempool",
		Name:      "accepted_transactions",
		Help:      "Number of transactions accepted to the mempool",
	})

	prometheusRejectedTransactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockminer",
		Subsystem: "mempool",
		Name:      "rejected_transactions",
		Help:      "Number of transactions rejected by the mempool, by violated rule",
	}, []string{"reason"})

	prometheusMempoolSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "blockminer",
		Subsystem: "mempool",
		Name:      "size",
		Help:      "Number of transactions currently in the mempool",
	})
)
