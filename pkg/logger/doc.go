// Package logger builds configured slog loggers with context-aware attribute
// injection.
//
// New applies functional options over production-safe defaults (JSON, info
// level, stdout). Context extractors registered with WithContextExtractors or
// WithContextValue run on every log call, so request-scoped values such as the
// current user ID appear on records automatically:
//
//	log := logger.New(
//		logger.WithProduction("taskflow"),
//		logger.WithContextValue("user_id", userIDKey{}),
//	)
//	logger.SetAsDefault(log)
//
// The attr helpers (Error, UserID, Plan, Counter) keep attribute keys
// consistent across packages.
package logger
