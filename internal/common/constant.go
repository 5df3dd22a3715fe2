package common

const (
	// AuthorizationHeaderName carries bearer session and update tokens.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token inside the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName is echoed on every response for log correlation.
	RequestIDHeaderName = "X-Request-ID"
)
