package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldCatalogSize     = "catalog-size"
	FieldCategory        = "category"
	FieldCount           = "count"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldFile            = "file"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldModel           = "model"
	FieldPolicyID        = "policy-id"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldSessionID       = "session-id"
	FieldStack           = "stack"
	FieldTaskType        = "task-type"
	FieldTicketID        = "ticket-id"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
)
