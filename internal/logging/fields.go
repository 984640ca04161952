package logging

import "log/slog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldSource     = "source"
	FieldView       = "view"
	FieldEdition    = "edition"
	FieldInput      = "input"
	FieldResolved   = "resolved"
	FieldFound      = "found"
	FieldMatches    = "matches"
	FieldDeliveries = "deliveries"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldIntervalMS = "interval_ms"
	FieldError      = "error"
)

// WithCommon appends service/version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
