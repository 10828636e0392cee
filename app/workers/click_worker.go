// Package workers contains background goroutine pools for asynchronous processing
package workers

import (
	"context"
	"log"
	"sync"
	"time"

	businessflow "github.com/amirphl/Yatagarasu/business_flow"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// persistTimeout bounds one click write so a stuck store cannot pin a worker
const persistTimeout = 10 * time.Second

var clickEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "click_events_total",
		Help: "Click events by pipeline outcome",
	},
	[]string{"result"},
)

// StartClickWorkers launches the click analytics worker pool. Each worker
// drains the shared events channel and persists clicks best-effort: any
// failure is logged and counted, never propagated. The returned stop
// function closes the channel and blocks until all workers have drained it.
func StartClickWorkers(workerCount int, events chan businessflow.ClickEvent, recorder businessflow.ClickRecorder) (stop func()) {
	if workerCount <= 0 {
		workerCount = 1
	}
	log.Printf("Starting %d click worker(s)", workerCount)

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func() {
			defer wg.Done()
			clickWorker(events, recorder)
		}()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			close(events)
			wg.Wait()
		})
	}
}

func clickWorker(events <-chan businessflow.ClickEvent, recorder businessflow.ClickRecorder) {
	for event := range events {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		err := recorder.Record(ctx, event)
		cancel()

		if err != nil {
			clickEventsTotal.WithLabelValues("failed").Inc()
			log.Printf("Failed to record click for uid %s: %v", event.UID, err)
			continue
		}
		clickEventsTotal.WithLabelValues("recorded").Inc()
	}
}

// Enqueue offers an event to the pipeline without ever blocking the caller.
// A full buffer drops the event; click capture is best-effort by contract.
func Enqueue(events chan<- businessflow.ClickEvent, event businessflow.ClickEvent) {
	select {
	case events <- event:
	default:
		clickEventsTotal.WithLabelValues("dropped").Inc()
		log.Printf("Click event buffer full, dropping event for uid %s", event.UID)
	}
}
