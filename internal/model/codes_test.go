package model

import "testing"

func TestInstallResultRoundTrip(t *testing.T) {
	for _, v := range InstallResults() {
		if got := InstallResultFrom(v.Int()); got != v {
			t.Fatalf("expected %v to round trip, got %v", v, got)
		}
	}
}

func TestInstallResultUnknownDefaultsToSuccess(t *testing.T) {
	for _, code := range []int{-1, 4, 99, 1 << 20} {
		if got := InstallResultFrom(code); got != InstallSuccess {
			t.Fatalf("expected code %d to decode to Success, got %v", code, got)
		}
	}
}

func TestInstallResultCodesMatchNative(t *testing.T) {
	want := map[InstallResult]int{
		InstallSuccess:              0,
		InstallOverwrite:            1,
		InstallFailure:              2,
		InstallBaseInstallAttempted: 3,
	}
	for v, code := range want {
		if v.Int() != code {
			t.Fatalf("expected %v to encode to %d, got %d", v, code, v.Int())
		}
	}
	if !InstallOverwrite.Installed() || InstallFailure.Installed() {
		t.Fatalf("unexpected Installed results")
	}
}

func TestPatchTypeRoundTripAndDefault(t *testing.T) {
	for _, v := range PatchTypes() {
		if got := PatchTypeFrom(v.Int()); got != v {
			t.Fatalf("expected %v to round trip, got %v", v, got)
		}
	}
	if got := PatchTypeFrom(7); got != PatchUpdate {
		t.Fatalf("expected unknown patch type to decode to Update, got %v", got)
	}
	if PatchDLC.Int() != 1 || PatchMod.Int() != 2 {
		t.Fatalf("unexpected patch codes %d %d", PatchDLC.Int(), PatchMod.Int())
	}
}

func TestInputTypeRoundTripAndDefault(t *testing.T) {
	seen := map[int]InputType{}
	for _, v := range InputTypes() {
		if prev, ok := seen[v.Int()]; ok {
			t.Fatalf("code %d shared by %v and %v", v.Int(), prev, v)
		}
		seen[v.Int()] = v
		if got := InputTypeFrom(v.Int()); got != v {
			t.Fatalf("expected %v to round trip, got %v", v, got)
		}
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 input types, got %d", len(seen))
	}
	if got := InputTypeFrom(-3); got != InputNone {
		t.Fatalf("expected None, got %v", got)
	}
}

func TestNativeAnalogRoundTripAndDefault(t *testing.T) {
	for _, v := range NativeAnalogs() {
		if got := NativeAnalogFrom(v.Int()); got != v {
			t.Fatalf("expected %v to round trip, got %v", v, got)
		}
	}
	if got := NativeAnalogFrom(2); got != AnalogLStick {
		t.Fatalf("expected LStick, got %v", got)
	}
}

func TestStringForUnknownCode(t *testing.T) {
	if got := InstallResult(42).String(); got != "InstallResult(42)" {
		t.Fatalf("unexpected string %q", got)
	}
	if got := PatchMod.String(); got != "Mod" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestInputBindingLabel(t *testing.T) {
	cases := []struct {
		binding InputBinding
		want    string
	}{
		{InputBinding{Button: "A", Type: InputButton}, "Button"},
		{InputBinding{Button: "LS", Type: InputStick, Analog: AnalogLStick}, "Left stick"},
		{InputBinding{Button: "RS", Type: InputStick, Analog: AnalogRStick}, "Right stick"},
		{InputBinding{Button: "X"}, "Unmapped"},
	}
	for _, tc := range cases {
		if got := tc.binding.Label(); got != tc.want {
			t.Fatalf("expected %q for %#v, got %q", tc.want, tc.binding, got)
		}
	}
}
