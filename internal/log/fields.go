package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldStatusCode = "status_code"
	FieldRows       = "rows"
	FieldKept       = "kept"
	FieldMonths     = "months"
	FieldFailed     = "failed"
	FieldPath       = "path"
	FieldChart      = "chart"
	FieldReportID   = "report_id"
	FieldError      = "error"
)

// Components
const (
	ComponentApp       = "app"
	ComponentCollector = "collector"
	ComponentChart     = "chart"
	ComponentPublisher = "publisher"
)
