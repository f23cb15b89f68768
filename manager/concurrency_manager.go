package manager

import (
	"context"
	"sync"
	"time"

	"itinerary/config"
	"itinerary/logging"
	"itinerary/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// DefaultUpstream is the bucket used for upstreams without their own entry.
const DefaultUpstream = "default"

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

// ConcurrencyManager bounds the number of concurrent calls to each upstream API.
type ConcurrencyManager struct {
	semMap      map[string]chan struct{}
	mu          sync.Mutex
	defaultSize int
	wait        time.Duration
}

// NewConcurrencyManager initializes a ConcurrencyManager with per-upstream limits, a default
// limit for everything else, and the longest time Acquire waits for a slot.
func NewConcurrencyManager(upstreams map[string]config.UpstreamConfigEntry, defaultSize int, wait time.Duration) *ConcurrencyManager {
	if defaultSize <= 0 {
		defaultSize = 10
	}
	cm := &ConcurrencyManager{
		semMap:      make(map[string]chan struct{}),
		defaultSize: defaultSize,
		wait:        wait,
	}

	for name, cfg := range upstreams {
		size := cfg.Size
		if size <= 0 {
			size = defaultSize
			log.Warnf("Upstream '%s' has invalid size %d. Setting to default size %d.", name, cfg.Size, size)
		}
		cm.semMap[name] = make(chan struct{}, size)
	}
	cm.semMap[DefaultUpstream] = make(chan struct{}, cm.defaultSize)

	return cm
}

// Acquire waits for a slot on the given upstream. On success it returns a release
// function that must be called exactly once. It gives up after the configured wait
// or when ctx is done.
func (cm *ConcurrencyManager) Acquire(ctx context.Context, upstream string) (func(), bool) {
	cm.mu.Lock()
	sem, exists := cm.semMap[upstream]
	if !exists {
		sem = cm.semMap[DefaultUpstream]
		upstream = DefaultUpstream
	}
	cm.mu.Unlock()

	queued := metrics.SlotsQueued.WithLabelValues(upstream)
	processing := metrics.SlotsProcessing.WithLabelValues(upstream)

	queued.Inc()
	defer queued.Dec()

	// A free slot is taken immediately, whatever the wait.
	select {
	case sem <- struct{}{}:
		return cm.acquired(sem, processing), true
	default:
	}

	timer := time.NewTimer(cm.wait)
	defer timer.Stop()

	select {
	case sem <- struct{}{}:
		return cm.acquired(sem, processing), true
	case <-timer.C:
		log.Warnf("Upstream %s: no slot free after %s", upstream, cm.wait)
		return nil, false
	case <-ctx.Done():
		log.Debugf("Upstream %s: caller gave up waiting for a slot: %v", upstream, ctx.Err())
		return nil, false
	}
}

// acquired records a taken slot and returns its release function.
func (cm *ConcurrencyManager) acquired(sem chan struct{}, processing prometheus.Gauge) func() {
	processing.Inc()
	var once sync.Once
	return func() {
		once.Do(func() {
			processing.Dec()
			<-sem
		})
	}
}
