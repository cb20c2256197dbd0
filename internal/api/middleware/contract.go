package middleware

import "time"

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// HTTPMetrics метрики HTTP запросов
type HTTPMetrics interface {
	ObserveHTTP(method, route, status string, d time.Duration)
}
