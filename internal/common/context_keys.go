// File: internal/common/context_keys.go
package common

const (
	// BrowserIDKey is the context key for the identifier of the calling browser
	BrowserIDKey = "browserID"
	// LoggerKey is the context key for the request scoped logger
	LoggerKey = "logger"
	// RequestIDHeader carries the request ID in and out
	RequestIDHeader = "X-Request-ID"
)
