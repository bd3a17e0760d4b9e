package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Display       string         `json:"message"`
	InternalError string         `json:"internal_error,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
}

// NewErrorResponse renders err for clients: the first hint as the message and
// the reportable details. Internal messages are only exposed when
// includeInternal is set.
func NewErrorResponse(err error, includeInternal bool) ErrorResponse {
	resp := ErrorResponse{
		Error: ErrorDetail{
			Display: GetDisplayMessage(err),
			Details: reportableDetails(err),
		},
	}
	if includeInternal {
		resp.Error.InternalError = err.Error()
	}
	return resp
}

// reportableDetails collects the maps attached with WithReportableDetails
func reportableDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			raw, ok := strings.CutPrefix(payload, "__json__:")
			if !ok {
				continue
			}
			var m map[string]any
			if err := json.Unmarshal([]byte(raw), &m); err == nil {
				for k, v := range m {
					details[k] = v
				}
			}
		}
	}

	if len(details) == 0 {
		return nil
	}
	return details
}
