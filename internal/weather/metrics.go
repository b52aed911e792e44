package weather

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zipcast_fetch_total",
		Help: "Upstream GET requests by outcome (ok, status, error)",
	}, []string{"outcome"})
	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zipcast_resolutions_total",
		Help: "Forecast resolutions by result (ok, not_found, unavailable, error)",
	}, []string{"result"})
)
