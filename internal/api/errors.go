package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/coding1100/appointment-setter-console/internal/serviceerr"
)

const fallbackDetail = "An error occurred"

// errorBody is the union of error shapes the backend produces. The detail
// field is either a plain message or an array of field validation errors.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type fieldDetail struct {
	Loc   []json.RawMessage `json:"loc"`
	Field string            `json:"field"`
	Msg   string            `json:"msg"`
	Mess  string            `json:"message"`
}

// DecodeError coerces a non-2xx response into the canonical error taxonomy:
// array-shaped validation details become a ValidationError, everything else an
// APIError with a single detail string.
func DecodeError(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &serviceerr.APIError{StatusCode: resp.StatusCode, Detail: fallbackDetail}
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return &serviceerr.APIError{StatusCode: resp.StatusCode, Detail: fallbackDetail}
	}

	if len(body.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(body.Detail, &detail); err == nil {
			return &serviceerr.APIError{StatusCode: resp.StatusCode, Detail: detail}
		}

		var fields []fieldDetail
		if err := json.Unmarshal(body.Detail, &fields); err == nil {
			return &serviceerr.ValidationError{Fields: flattenFields(fields)}
		}
	}

	if body.Message != "" {
		return &serviceerr.APIError{StatusCode: resp.StatusCode, Detail: body.Message}
	}

	return &serviceerr.APIError{StatusCode: resp.StatusCode, Detail: fallbackDetail}
}

func flattenFields(details []fieldDetail) []serviceerr.FieldError {
	fields := make([]serviceerr.FieldError, 0, len(details))
	for _, d := range details {
		field := d.Field
		if field == "" && len(d.Loc) > 0 {
			// loc is ["body", "field"] or similar; the last element names
			// the field and may be a string or an index.
			var name string
			if err := json.Unmarshal(d.Loc[len(d.Loc)-1], &name); err != nil {
				name = string(d.Loc[len(d.Loc)-1])
			}
			field = name
		}
		if field == "" {
			field = "request"
		}

		message := d.Msg
		if message == "" {
			message = d.Mess
		}
		if message == "" {
			message = fallbackDetail
		}

		fields = append(fields, serviceerr.FieldError{Field: field, Message: message})
	}

	return fields
}

// StatusError maps well-known status codes onto sentinel errors so callers can
// classify failures with errors.Is.
func StatusError(err error) error {
	apiErr, ok := err.(*serviceerr.APIError)
	if !ok {
		return err
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", serviceerr.ErrUnauthorized, apiErr.Detail)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", serviceerr.ErrRateLimited, apiErr.Detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", serviceerr.ErrNotFound, apiErr.Detail)
	default:
		return err
	}
}
