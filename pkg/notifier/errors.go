package notifier

const (
	ErrorCodeServerError  = "SERVER_ERROR"  // For 5xx HTTP status
	ErrorCodeTimeout      = "TIMEOUT"       // For context timeout
	ErrorCodeBadPayload   = "BAD_PAYLOAD"   // For 400/validation errors
	ErrorCodeNetworkError = "NETWORK_ERROR" // For connection failures
)
