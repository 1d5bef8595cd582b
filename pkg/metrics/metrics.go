package metrics

import "time"

type Metrics interface {
	// Business
	RecordRecalculation(trigger string)
	RecordRecalculationSkipped()
	RecordEmission(status string)
	ObserveRecalculationDuration(duration time.Duration)
	SetRosterSize(size int)
	SetNearbyCount(count int)
	RecordUseCaseExecution(useCaseName string, success bool, duration time.Duration)

	// Infrastructure
	ObserveHTTPRequestDuration(method, path, statusCode string, duration float64)
	RecordLocationEventProcessed(status string)

	// Performance and Resilience
	IncCacheHit(cacheType string)
	IncCacheMiss(cacheType string)
	IncSubscriberDropped()
}
