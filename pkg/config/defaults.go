package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "innkeep"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultBookingLockTTL        = 30 * time.Second
	DefaultBookingLockRetryDelay = 150 * time.Millisecond
	DefaultMaxStayNights         = 90

	DefaultRoomsServiceURL        = "http://localhost:8081"
	DefaultBookingsServiceURL     = "http://localhost:8082"
	DefaultPackagesServiceURL     = "http://localhost:8083"
	DefaultPricePeriodsServiceURL = "http://localhost:8084"

	DefaultPaginationLimit = 100
)
