// Package metrics holds the Prometheus collectors shared by the API server and the worker.
//
// All collectors are registered with the default registry through promauto and
// served on /metrics (API) or METRICS_PORT (worker).
//
//	start := time.Now()
//	report, err := agg.BuildReport(ctx, userID)
//	metrics.RecordShoppingListBuild(len(report), err, time.Since(start))
package metrics
