package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"inventory-services/invlog"
	"inventory-services/types"

	"github.com/ninja-software/terror/v2"
)

type ErrorMessage string

const (
	InternalErrorTryAgain ErrorMessage = "Internal Error - Please try again in a few minutes or contact support"
	InputError            ErrorMessage = "Input Error - Please try again"
)

func (errMsg ErrorMessage) String() string {
	return string(errMsg)
}

// ErrorObject is the JSON error envelope sent to the front end.
type ErrorObject struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

// StatusFromErr maps the error taxonomy onto HTTP statuses. Everything not
// classified is a storage or programming fault and reads as 500.
func StatusFromErr(err error) int {
	var validationErr *types.ValidationError
	var stockErr *types.InsufficientStockError
	switch {
	case errors.Is(err, types.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &stockErr):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// WithError handles error responses.
func WithError(next func(w http.ResponseWriter, r *http.Request) (int, error)) http.HandlerFunc {
	fn := func(w http.ResponseWriter, r *http.Request) {
		code, err := next(w, r)
		if err == nil {
			return
		}

		errObj := &ErrorObject{
			Message:   err.Error(),
			ErrorCode: fmt.Sprintf("%d", code),
		}
		var bErr *terror.TError
		if errors.As(err, &bErr) {
			errObj.Message = bErr.Message

			switch bErr.Level {
			case terror.ErrLevelWarn:
				invlog.L.Warn().Err(err).Msg("rest error")
			default:
				invlog.L.Err(err).Msg("rest error")
			}

			// keep friendly messages, fall back to generic ones
			if bErr.Error() == bErr.Message {
				if code == http.StatusInternalServerError {
					errObj.Message = InternalErrorTryAgain.String()
				}
				if code == http.StatusBadRequest {
					errObj.Message = InputError.String()
				}
			}
		} else {
			invlog.L.Err(err).Str("r.URL.Path", r.URL.Path).Msg("rest error")
		}

		jsonErr, marshalErr := json.Marshal(errObj)
		if marshalErr != nil {
			terror.Echo(marshalErr)
			http.Error(w, `{"message":"JSON failed, please contact support.","error_code":"00001"}`, code)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, wErr := w.Write(jsonErr)
		if wErr != nil {
			invlog.L.Err(wErr).Msg("failed to send error response")
		}
	}
	return fn
}
