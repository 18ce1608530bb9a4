package mongo

import "errors"

var (
	ErrNotReady          = errors.New("mongo.not_ready")
	ErrHealthcheckFailed = errors.New("mongo.healthcheck_failed")
)
