package middleware

import "hoa/packages/common/logger"

var log = logger.NewSource("MIDDLEWARE", logger.Default)
