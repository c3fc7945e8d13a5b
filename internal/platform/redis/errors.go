package redis

import "errors"

// ErrDisabled is returned by NewRedisClient when REDIS_DISABLED=true.
var ErrDisabled = errors.New("redis disabled by configuration")
