// Package logging is the structured logging facade of vaultshare. Servers log
// text through slog during development and JSON through zap in production;
// tests use NopLogger.
package logging

import "context"

// Logger takes a message plus alternating key and value arguments:
//
//	log.Info(ctx, "share created", "share_id", id, "max_views", n)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that prefixes every entry with args.
	With(args ...any) Logger
}
