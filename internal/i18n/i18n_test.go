package i18n

import "testing"

func TestKnownMessage(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if got := T("system_gpu_driver"); got != "System GPU driver" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestUnknownMessageFallsBackToID(t *testing.T) {
	if got := T("does_not_exist"); got != "does_not_exist" {
		t.Fatalf("expected id fallback, got %q", got)
	}
}

func TestTemplateAndPlural(t *testing.T) {
	if got := TData("install_success", map[string]interface{}{"Name": "Turnip"}); got != "Installed Turnip" {
		t.Fatalf("unexpected template output %q", got)
	}
	if got := TPlural("addons_applied", 1); got != "1 add-on enabled" {
		t.Fatalf("unexpected singular %q", got)
	}
	if got := TPlural("addons_applied", 3); got != "3 add-ons enabled" {
		t.Fatalf("unexpected plural %q", got)
	}
}

func TestInitRejectsBadLanguage(t *testing.T) {
	if err := Init("not a language tag!"); err == nil {
		t.Fatalf("expected parse error")
	}
	if err := Init("es"); err != nil {
		t.Fatalf("expected es to parse: %v", err)
	}
	if got := T("not_set"); got != "Not set" {
		t.Fatalf("expected English fallback, got %q", got)
	}
	if err := Init("en"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
}
