package transport

import "hoa/packages/common/logger"

var Logger = logger.NewSource("HTTP", logger.Default)
