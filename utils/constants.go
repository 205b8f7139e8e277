// File: utils/constants.go
package utils

import "time"

// QuoteCachePrefix is the prefix used for Redis pricing-quote cache keys.
const QuoteCachePrefix = "quote:"

// QuoteCacheTTL is the time-to-live for memoized pricing quotes.
const QuoteCacheTTL = 10 * time.Minute
