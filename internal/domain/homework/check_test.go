package homework

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return body
}

func TestCheckResponseMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{name: "array body", raw: `[]`, want: ErrTypeMismatch},
		{name: "string body", raw: `"homeworks"`, want: ErrTypeMismatch},
		{name: "missing homeworks", raw: `{"current_date": 1}`, want: ErrMissingKey},
		{name: "homeworks is object", raw: `{"homeworks": {}}`, want: ErrTypeMismatch},
		{name: "homeworks is null", raw: `{"homeworks": null}`, want: ErrTypeMismatch},
		{name: "element is not object", raw: `{"homeworks": [1]}`, want: ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := CheckResponse(decode(t, tt.raw))
			if !errors.Is(err, tt.want) {
				t.Fatalf("CheckResponse() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("error %v is not ErrMalformedResponse", err)
			}
			if records != nil {
				t.Fatalf("records = %v, want nil", records)
			}
		})
	}
}

func TestCheckResponseEmptyList(t *testing.T) {
	_, err := CheckResponse(decode(t, `{"homeworks": [], "current_date": 100}`))
	if !errors.Is(err, ErrNoUpdates) {
		t.Fatalf("error = %v, want ErrNoUpdates", err)
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Fatal("empty list must not be reported as malformed")
	}
}

func TestCheckResponseKeepsOrder(t *testing.T) {
	body := decode(t, `{"homeworks": [
		{"homework_name": "first", "status": "approved"},
		{"homework_name": "second", "status": "rejected"}
	]}`)
	records, err := CheckResponse(body)
	if err != nil {
		t.Fatalf("CheckResponse() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0][KeyHomeworkName] != "first" || records[1][KeyHomeworkName] != "second" {
		t.Fatalf("unexpected order: %v", records)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusApproved, `Изменился статус проверки работы "X". Работа проверена: ревьюеру всё понравилось. Ура!`},
		{StatusReviewing, `Изменился статус проверки работы "X". Работа взята на проверку ревьюером.`},
		{StatusRejected, `Изменился статус проверки работы "X". Работа проверена: у ревьюера есть замечания.`},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got, err := ParseStatus(Record{KeyHomeworkName: "X", KeyStatus: string(tt.status)})
			if err != nil {
				t.Fatalf("ParseStatus() error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseStatusErrors(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want error
	}{
		{name: "no name", rec: Record{KeyStatus: "approved"}, want: ErrMissingField},
		{name: "no status", rec: Record{KeyHomeworkName: "X"}, want: ErrMissingField},
		{name: "empty record", rec: Record{}, want: ErrMissingField},
		{name: "unknown status", rec: Record{KeyHomeworkName: "X", KeyStatus: "lost"}, want: ErrUnknownStatus},
		{name: "empty status", rec: Record{KeyHomeworkName: "X", KeyStatus: ""}, want: ErrUnknownStatus},
		{name: "case matters", rec: Record{KeyHomeworkName: "X", KeyStatus: "Approved"}, want: ErrUnknownStatus},
		{name: "numeric status", rec: Record{KeyHomeworkName: "X", KeyStatus: json.Number("1")}, want: ErrUnknownStatus},
		{name: "numeric name", rec: Record{KeyHomeworkName: json.Number("7"), KeyStatus: "approved"}, want: ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ParseStatus(tt.rec)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ParseStatus() error = %v, want %v", err, tt.want)
			}
			if msg != "" {
				t.Fatalf("ParseStatus() message = %q, want empty", msg)
			}
		})
	}
}

func TestCurrentDate(t *testing.T) {
	if got, ok := CurrentDate(decode(t, `{"current_date": 1700000000}`)); !ok || got != 1700000000 {
		t.Fatalf("CurrentDate() = %d, %v", got, ok)
	}
	if _, ok := CurrentDate(decode(t, `{"homeworks": []}`)); ok {
		t.Fatal("expected missing current_date to be reported")
	}
	if _, ok := CurrentDate(decode(t, `{"current_date": "yesterday"}`)); ok {
		t.Fatal("expected string current_date to be rejected")
	}
	if _, ok := CurrentDate(decode(t, `{"current_date": 1.5}`)); ok {
		t.Fatal("expected fractional current_date to be rejected")
	}
	if _, ok := CurrentDate([]any{}); ok {
		t.Fatal("expected non-object body to be rejected")
	}
}
