// Package logger provides a small slog factory and shared attribute
// helpers so access-control events are logged with consistent keys.
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithFormat(logger.FormatText),
//	)
//	log.Info("request denied", logger.UserID(id), logger.Permission("world.edit"))
package logger
