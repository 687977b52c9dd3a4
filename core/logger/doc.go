// Package logger provides structured logging for the application.
//
// It wraps go.uber.org/zap with a small configuration surface (level and
// encoding) and a helper for attaching the per-request ray_id to log entries
// produced inside HTTP handlers.
package logger
