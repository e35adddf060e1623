package ws

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

type InsightsUpdatedEvent struct {
	Type      string `json:"type"`
	Industry  string `json:"industry"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyInsightsUpdated tells connected dashboards that a background refresh
// landed for the given industry, so they can refetch.
func NotifyInsightsUpdated(industry string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	industry = strings.TrimSpace(industry)
	if industry == "" {
		return
	}

	evt := InsightsUpdatedEvent{
		Type:      "insights_updated",
		Industry:  industry,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
