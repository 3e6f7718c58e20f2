package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_EmbedsParams(t *testing.T) {
	if msg := T("too_long", map[string]string{"max": "6"}); msg != "too long (max 6 characters)" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if msg := T("too_long", nil); msg != "too long" {
		t.Fatalf("unexpected message without params: %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if msg := T("date_order", nil); msg != "X:date_order" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("date_order", nil); msg != "end date is before start date" {
		t.Fatalf("nil translator should restore en dictionary, got %q", msg)
	}
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code echo, got %q", msg)
	}
}
