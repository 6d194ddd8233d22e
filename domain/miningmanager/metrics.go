package miningmanager

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusMinedBlocks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blockminer",
		Subsystem: "miner",
		Name:      "mined_blocks",
		Help:      "Number of blocks mined and appended to the ledger",
	})

	prometheusMinedTransactions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blockminer",
		Subsystem: "miner",
		Name:      "mined_transactions",
		Help:      "Number of transactions included in mined blocks",
	})

	prometheusHashesTried = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blockminer",
		Subsystem: "miner",
		Name:      "hashes_tried",
		Help:      "Number of nonces tried by the proof-of-work search",
	})

	prometheusMiningDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "blockminer",
		Subsystem: "miner",
		Name:      "mining_duration_seconds",
		Help:      "Time it took to mine a block",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
	})
)
