package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Application error codes. They are translated into HTTP status codes at
// the edge, but carry no transport semantics themselves.
const (
	ECONFLICT        = "conflict"        // concurrent write collision on the store
	EINVALID         = "invalid"         // validation failed on incoming data
	ENOTFOUND        = "not_found"       // the requested entity does not exist
	EUNAUTHENTICATED = "unauthenticated" // no actor on a request that needs one
	EUNAUTHORIZED    = "unauthorized"    // the actor does not own the entity
	EFORBIDDEN       = "forbidden"       // the action is never permitted for this actor
	EINTERNAL        = "internal"        // anything unexpected
)

// Error is an application error. Message is safe to show to an end user,
// except for EINTERNAL where it gets masked before leaving the server.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("pingpong error: code=%s message=%s", e.Code, e.Message)
}

// Errorf builds an *Error with a formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps the application error code of any error.
// A nil error has no code, a foreign error is EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps the user-facing message of any error.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred. Please try again later."
}

// statusCodes maps application error codes to HTTP status codes.
var statusCodes = map[string]int{
	ECONFLICT:        http.StatusConflict,
	EINVALID:         http.StatusBadRequest,
	ENOTFOUND:        http.StatusNotFound,
	EUNAUTHENTICATED: http.StatusUnauthorized,
	EUNAUTHORIZED:    http.StatusForbidden,
	EFORBIDDEN:       http.StatusForbidden,
	EINTERNAL:        http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if status, ok := statusCodes[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// errorResponse is the json body returned for any failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// ReturnError writes an error to the response, translating the application
// error code into an HTTP status. Internal errors are logged and masked.
func ReturnError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := ErrorCode(err), ErrorMessage(err)
	if code == EINTERNAL {
		LogError(r, err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ErrorStatusCode(code))
	json.NewEncoder(w).Encode(&errorResponse{Error: message})
}

// LogError logs an error together with the request it occurred on.
func LogError(r *http.Request, err error) {
	zap.L().Error("request error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
}
