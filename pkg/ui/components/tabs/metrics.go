package tabs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tabPressCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clubterm",
		Subsystem: "tabs",
		Name:      "press_total",
		Help:      "The total number of tab presses",
	})

	autoScrollCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clubterm",
		Subsystem: "tabs",
		Name:      "auto_scroll_total",
		Help:      "The total number of tab strip auto scrolls",
	})

	measureErrorCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clubterm",
		Subsystem: "tabs",
		Name:      "measure_errors_total",
		Help:      "The total number of tabs that could not be measured",
	})
)
