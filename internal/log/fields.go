package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldEndpoint   = "endpoint"
	FieldLanguage   = "language"
	FieldCount      = "count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentAPI     = "api"
	ComponentSession = "session"
	ComponentStorage = "storage"
	ComponentCache   = "cache"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpLogin     = "login"
	OpLogout    = "logout"
	OpSignup    = "signup"
	OpReset     = "password_reset"
	OpList      = "list"
	OpCreate    = "create"
	OpDelete    = "delete"
	OpDashboard = "dashboard"
	OpStats     = "statistics"
	OpLanguage  = "language"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)

// Fields provides a builder pattern for structured log fields
type Fields map[string]any

// NewFields creates a new Fields instance
func NewFields() Fields {
	return make(Fields)
}

// WithOperation adds operation field
func (f Fields) WithOperation(op string) Fields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f Fields) WithError(err error) Fields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithHTTP adds request and response fields
func (f Fields) WithHTTP(method, path string, status int, durationMs int64) Fields {
	f[FieldMethod] = method
	f[FieldPath] = path
	f[FieldStatusCode] = status
	f[FieldDuration] = durationMs
	return f
}

// With adds an arbitrary field
func (f Fields) With(key string, value any) Fields {
	f[key] = value
	return f
}

// ToSlice converts Fields to a slice for slog
func (f Fields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
