package api

import "testing"

func TestParseErrorBody_PrefersStructuredList(t *testing.T) {
	body := ParseErrorBody([]byte(`{"errors":["a","b"],"message":"ignored"}`))
	if body.Kind != ErrorStructured {
		t.Fatalf("expected structured, got %v", body.Kind)
	}
	if got := body.Display(); got != "a, b" {
		t.Errorf("unexpected display: %q", got)
	}
}

func TestParseErrorBody_MessageField(t *testing.T) {
	body := ParseErrorBody([]byte(`{"message":"task not found"}`))
	if body.Kind != ErrorMessage {
		t.Fatalf("expected message, got %v", body.Kind)
	}
	if got := body.Display(); got != "task not found" {
		t.Errorf("unexpected display: %q", got)
	}
}

func TestParseErrorBody_JSONString(t *testing.T) {
	body := ParseErrorBody([]byte(`"plain failure"`))
	if body.Kind != ErrorRaw {
		t.Fatalf("expected raw, got %v", body.Kind)
	}
	if got := body.Display(); got != "plain failure" {
		t.Errorf("unexpected display: %q", got)
	}
}

func TestParseErrorBody_RawText(t *testing.T) {
	body := ParseErrorBody([]byte("Bad Request"))
	if body.Kind != ErrorRaw {
		t.Fatalf("expected raw, got %v", body.Kind)
	}
	if got := body.Display(); got != "Bad Request" {
		t.Errorf("unexpected display: %q", got)
	}
}

func TestParseErrorBody_EmptyAndUnusable(t *testing.T) {
	for _, data := range []string{"", "   ", `{"unrelated":1}`} {
		body := ParseErrorBody([]byte(data))
		if body.Kind != ErrorUnknown {
			t.Errorf("%q: expected unknown, got %v", data, body.Kind)
		}
		if body.Display() != "" {
			t.Errorf("%q: expected empty display", data)
		}
	}
}

func TestError_FallbackMessage(t *testing.T) {
	err := &Error{StatusCode: 500, Body: ErrorBody{Kind: ErrorUnknown}}
	if got := Message(err); got != "an error occurred" {
		t.Errorf("unexpected message: %q", got)
	}
}
