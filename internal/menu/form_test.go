package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(f *ValueForm, text string) {
	for _, r := range text {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestValueFormEscapeCancels(t *testing.T) {
	f := NewValueForm(ValuePrompt{Action: "drivers:install"})
	_, done, cancel := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if done || !cancel {
		t.Fatalf("expected cancel, got done=%v cancel=%v", done, cancel)
	}
}

func TestValueFormInstallValidatesExtension(t *testing.T) {
	b := &fakeBackend{}
	f := NewValueForm(ValuePrompt{Context: testContext(b), Action: "drivers:install"})
	typeText(f, "/tmp/driver.tar")
	cmd, done, cancel := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || done || cancel {
		t.Fatalf("expected validation to block submit")
	}
	if f.Error() == "" {
		t.Fatalf("expected validation error")
	}
	f.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	typeText(f, "/tmp/driver.zip")
	cmd, done, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !done || cmd == nil {
		t.Fatalf("expected submit")
	}
	cmd()
	if got := b.last(); got.name != "install" || got.args[0] != "/tmp/driver.zip" {
		t.Fatalf("unexpected backend call %+v", got)
	}
}

func TestValueFormSettingEdit(t *testing.T) {
	b := &fakeBackend{}
	f := NewValueForm(ValuePrompt{Context: testContext(b), Action: "settings:edit", Target: "audio_volume", Initial: "80"})
	if f.Value() != "80" {
		t.Fatalf("expected initial value, got %q", f.Value())
	}
	if f.PendingLabel() != "audio_volume → 80" {
		t.Fatalf("unexpected pending label %q", f.PendingLabel())
	}
	cmd, done, _ := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !done {
		t.Fatalf("expected submit")
	}
	res, _ := cmd().(ActionResult)
	if res.Err != nil {
		t.Fatalf("unexpected error %v", res.Err)
	}
	if got := b.last(); got.name != "set" || got.args[0] != "audio_volume" || got.args[1] != "80" {
		t.Fatalf("unexpected backend call %+v", got)
	}
}

func TestValueFormEmptySettingCancels(t *testing.T) {
	f := NewValueForm(ValuePrompt{Action: "settings:edit", Target: "rng_seed"})
	_, done, cancel := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if done || !cancel {
		t.Fatalf("expected empty submit to cancel")
	}
}

func TestValueFormEmptyProfileSubmits(t *testing.T) {
	b := &fakeBackend{}
	f := NewValueForm(ValuePrompt{Context: testContext(b), Action: "input:profiles", Target: "1", Initial: "pro"})
	f.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	cmd, done, _ := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !done || cmd == nil {
		t.Fatalf("expected empty profile to submit")
	}
	cmd()
	if got := b.last(); got.name != "profile" || got.args[1] != "" {
		t.Fatalf("unexpected backend call %+v", got)
	}
}
