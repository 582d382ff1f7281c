package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvBookingLockTTL        = "BOOKING_LOCK_TTL"
	EnvBookingLockRetryDelay = "BOOKING_LOCK_RETRY_DELAY"
	EnvMaxStayNights         = "MAX_STAY_NIGHTS"

	EnvRoomsServiceURL        = "ROOMS_SERVICE_URL"
	EnvBookingsServiceURL     = "BOOKINGS_SERVICE_URL"
	EnvPackagesServiceURL     = "PACKAGES_SERVICE_URL"
	EnvPricePeriodsServiceURL = "PRICE_PERIODS_SERVICE_URL"
)
