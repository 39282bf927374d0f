package utils

import "go.uber.org/zap"

// LogFor logs a non-nil err under msg and reports whether it did.
func LogFor(log *zap.Logger, err error, msg string, fields ...zap.Field) bool {
	if err == nil {
		return false
	}
	log.Error(msg, append(fields, zap.Error(err))...)
	return true
}
