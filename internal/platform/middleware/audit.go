package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rxparse/rxparse/internal/platform/auth"
)

// AuditEntry represents an audit log entry produced by the middleware.
// It captures who accessed which endpoint, when, from where, and the outcome.
// Prescription text is PHI and deliberately never appears here: the entry
// carries the parse id assigned to the response, not the submitted text.
type AuditEntry struct {
	UserID     string
	UserRoles  []string
	Resource   string // first API path segment: prescriptions, reference
	Operation  string // second segment: parse, report, medications, icd10
	Action     string // read, create, update, delete
	ParseID    string
	IPAddress  string
	UserAgent  string
	Path       string
	Method     string
	Timestamp  time.Time
	RequestID  string
	StatusCode int
}

// AuditRecorder is the interface the audit middleware uses to persist audit
// entries. This decouples the middleware from any concrete sink so that tests
// can provide a mock implementation.
type AuditRecorder interface {
	RecordAccess(entry AuditEntry) error
}

// AuditRecorderFunc is a function adapter for AuditRecorder.
type AuditRecorderFunc func(entry AuditEntry) error

func (f AuditRecorderFunc) RecordAccess(entry AuditEntry) error {
	return f(entry)
}

// Audit returns Echo middleware that records every access under /api/v1/:
// the authenticated user and roles, the route, the parse id stamped by the
// parse handlers, and the response status.
//
// If no AuditRecorder is provided, it falls back to structured zerolog
// logging only. Recorder failures are logged and never fail the request.
func Audit(logger zerolog.Logger, recorders ...AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			if !isAuditablePath(path) {
				return next(c)
			}

			// Execute the handler first so we capture the response status
			// and the parse id it assigns.
			err := next(c)

			entry := AuditEntry{
				Timestamp:  time.Now().UTC(),
				Path:       path,
				Method:     req.Method,
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				StatusCode: c.Response().Status,
			}

			ctx := req.Context()
			entry.UserID = auth.UserIDFromContext(ctx)
			entry.UserRoles = auth.RolesFromContext(ctx)

			// Request ID from middleware chain
			if rid, ok := c.Get("request_id").(string); ok {
				entry.RequestID = rid
			}

			// Parse ID stamped by the prescription handlers
			if pid, ok := c.Get("parse_id").(string); ok {
				entry.ParseID = pid
			}

			entry.Action = httpMethodToAction(req.Method)
			entry.Resource, entry.Operation = splitAPIPath(path)

			// Record the audit entry
			if len(recorders) > 0 && recorders[0] != nil {
				if recErr := recorders[0].RecordAccess(entry); recErr != nil {
					logger.Error().Err(recErr).
						Str("request_id", entry.RequestID).
						Msg("failed to record audit entry")
				}
			}

			// Always emit a structured log for the audit trail
			logger.Info().
				Str("type", "access_audit").
				Str("request_id", entry.RequestID).
				Str("user_id", entry.UserID).
				Strs("user_roles", entry.UserRoles).
				Str("resource", entry.Resource).
				Str("operation", entry.Operation).
				Str("action", entry.Action).
				Str("parse_id", entry.ParseID).
				Str("method", entry.Method).
				Str("path", entry.Path).
				Str("remote_ip", entry.IPAddress).
				Int("status", entry.StatusCode).
				Msg("api_access")

			return err
		}
	}
}

// isAuditablePath returns true if the path is under /api/v1/.
func isAuditablePath(path string) bool {
	return strings.HasPrefix(path, "/api/v1/")
}

// httpMethodToAction maps HTTP methods to audit action codes.
func httpMethodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead:
		return "read"
	case http.MethodPost:
		return "create"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	default:
		return "read"
	}
}

// splitAPIPath returns the resource and operation segments of an API path.
//
//	/api/v1/prescriptions/parse             -> ("prescriptions", "parse")
//	/api/v1/reference/medications/PANADO    -> ("reference", "medications")
//	/api/v1/reference                       -> ("reference", "")
func splitAPIPath(path string) (resource, operation string) {
	segments := strings.Split(strings.TrimPrefix(path, "/api/v1/"), "/")
	resource = "unknown"
	if len(segments) > 0 && segments[0] != "" {
		resource = segments[0]
	}
	if len(segments) > 1 {
		operation = segments[1]
	}
	return resource, operation
}
