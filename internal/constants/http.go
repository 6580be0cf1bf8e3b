package constants

const (
	HEADER_CONTENT_TYPE           = "Content-Type"
	HEADER_REQUEST_ID             = "X-Request-Id"
	HEADER_VALUE_APPLICATION_JSON = "application/json"
)
