// internal/app/features/errors/logger.go
package errors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and answers the client
// with a friendly message. Full pages get the error template, HTMX swaps
// get plain text and API callers get JSON.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger returns an ErrorLogger writing to logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	fs := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	return fs
}

// LogServerError logs at Error and renders a 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg, e.fields(r, err)...)
	render(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL)
}

// LogBadRequest logs at Warn and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, e.fields(r, err)...)
	render(w, r, http.StatusBadRequest, "Bad request", userMsg, backURL)
}

// LogForbidden logs at Warn and renders the access denied page.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, e.fields(r, err)...)
	RenderForbidden(w, r, userMsg, backURL)
}

// HTMXLogServerError is LogServerError for fragment requests.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.log.Error(msg, e.fields(r, err)...)
	http.Error(w, userMsg, http.StatusInternalServerError)
}

// HTMXLogBadRequest is LogBadRequest for fragment requests.
func (e *ErrorLogger) HTMXLogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.log.Warn(msg, e.fields(r, err)...)
	http.Error(w, userMsg, http.StatusBadRequest)
}

// HTMXLogForbidden is LogForbidden for fragment requests.
func (e *ErrorLogger) HTMXLogForbidden(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.log.Warn(msg, e.fields(r, err)...)
	http.Error(w, userMsg, http.StatusForbidden)
}

type jsonError struct {
	Error string `json:"error"`
}

// JSON logs and writes {"error": userMsg} with status. 5xx log at Error,
// everything else at Warn.
func (e *ErrorLogger) JSON(w http.ResponseWriter, r *http.Request, status int, msg string, err error, userMsg string) {
	if status >= http.StatusInternalServerError {
		e.log.Error(msg, e.fields(r, err)...)
	} else {
		e.log.Warn(msg, e.fields(r, err)...)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: userMsg})
}
