package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldTxID       = "transaction_id"
	FieldGoalID     = "goal_id"
	FieldCategory   = "category"
	FieldAmount     = "amount_rupiah"
	FieldConfidence = "confidence"
)

// Components defines standard component names.
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentBudget     = "budget"
	ComponentStorage    = "storage"
	ComponentClassifier = "classifier"
	ComponentAdvisor    = "advisor"
	ComponentSuggest    = "suggest"
)

// Operations defines standard operation names.
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpClassify = "classify"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

