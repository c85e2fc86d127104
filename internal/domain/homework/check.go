package homework

import (
	"encoding/json"
	"fmt"
	"math"
)

// CheckResponse validates the decoded API body and returns the homework records it carries.
// An empty list yields ErrNoUpdates.
func CheckResponse(body any) ([]Record, error) {
	response, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: response is %T, want object", ErrTypeMismatch, body)
	}

	raw, ok := response[KeyHomeworks]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, KeyHomeworks)
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want array", ErrTypeMismatch, KeyHomeworks, raw)
	}
	if len(list) == 0 {
		return nil, ErrNoUpdates
	}

	records := make([]Record, 0, len(list))
	for i, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is %T, want object", ErrTypeMismatch, KeyHomeworks, i, item)
		}
		records = append(records, Record(rec))
	}
	return records, nil
}

// ParseStatus builds the chat message for a single homework record.
func ParseStatus(rec Record) (string, error) {
	rawName, ok := rec[KeyHomeworkName]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, KeyHomeworkName)
	}
	rawStatus, ok := rec[KeyStatus]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, KeyStatus)
	}

	name, ok := rawName.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, want string", ErrTypeMismatch, KeyHomeworkName, rawName)
	}
	status, _ := rawStatus.(string)
	verdict, ok := Status(status).Verdict()
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrUnknownStatus, rawStatus)
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}

// CurrentDate extracts the server time from the API body.
// The second result is false when the field is absent or not an integer.
func CurrentDate(body any) (int64, bool) {
	response, ok := body.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := response[KeyCurrentDate].(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
