package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/phpgen/pkg/generate"
	"github.com/matzehuels/phpgen/pkg/preview"
	"github.com/matzehuels/phpgen/pkg/project"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m FormModel, keys ...string) FormModel {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(FormModel)
	}
	return m
}

func newTestForm() FormModel {
	return NewFormModel(context.Background(), project.Default())
}

func TestFormModel_ProjectFields(t *testing.T) {
	m := newTestForm()

	m = press(m, "right")
	if m.Config.Framework != "symfony" {
		t.Errorf("framework = %q, want symfony", m.Config.Framework)
	}
	m = press(m, "left", "left")
	if m.Config.Framework != "lumen" {
		t.Errorf("framework = %q, want lumen (wraps around)", m.Config.Framework)
	}

	m = press(m, "down", "left")
	if m.Config.PHPVersion != "8.3" {
		t.Errorf("php = %q, want 8.3", m.Config.PHPVersion)
	}

	m = press(m, "down", "backspace", "backspace", "backspace", "space", "x")
	if m.Config.Name != "my- x" {
		t.Errorf("name = %q, want %q", m.Config.Name, "my- x")
	}
}

func TestFormModel_FrameworkSwitchDropsFeatures(t *testing.T) {
	m := newTestForm()
	m = press(m, "tab", "tab") // advanced
	m = press(m, "down", "down", "down", "down", "enter")
	if !m.Config.HasFeature(project.FeatureBreeze) {
		t.Fatalf("breeze should be checked, features = %v", m.Config.Features.IDs())
	}

	m = press(m, "shift+tab", "shift+tab", "right") // project tab, laravel -> symfony
	if m.Config.HasFeature(project.FeatureBreeze) {
		t.Error("laravel-only feature should be dropped for symfony")
	}
}

func TestFormModel_Dependencies(t *testing.T) {
	m := newTestForm()
	m = press(m, "tab")

	// Default category is database; add the first entry twice.
	m = press(m, "enter")
	if got := m.Config.Dependencies.IDs(); len(got) != 1 || got[0] != "laravel/sanctum" {
		t.Fatalf("dependencies = %v", got)
	}
	m = press(m, "enter")
	if m.Config.Dependencies.Len() != 0 {
		t.Errorf("enter on a selected row should remove it, got %v", m.Config.Dependencies.IDs())
	}

	m = press(m, "right", "enter")
	if !m.Config.Dependencies.Has("livewire/livewire") {
		t.Errorf("ui category should start with livewire, got %v", m.Config.Dependencies.IDs())
	}

	m = press(m, "p", "e", "s", "t")
	rows := m.dependencyRows()
	if len(rows) != 1 || rows[0].ID != "pestphp/pest" {
		t.Fatalf("search rows = %v", rows)
	}
	m = press(m, "enter")
	if !m.Config.Dependencies.Has("pestphp/pest") {
		t.Error("pest should be added from search results")
	}

	m = press(m, "ctrl+d")
	if m.Config.Dependencies.Has("pestphp/pest") {
		t.Error("ctrl+d should remove the last added dependency")
	}

	m = press(m, "backspace", "backspace", "backspace", "backspace", "space", "space")
	if rows := m.dependencyRows(); len(rows) != 4 || rows[0].ID != "livewire/livewire" {
		t.Errorf("blank query should show the ui category, got %v", rows)
	}
}

func TestFormModel_GenerateAndReset(t *testing.T) {
	m := newTestForm()
	m = press(m, "right", "ctrl+g")
	if m.Generated == nil {
		t.Fatal("ctrl+g should generate")
	}
	if m.Generated.Framework != "symfony" || m.status != generate.Message {
		t.Errorf("generated = %+v, status = %q", m.Generated, m.status)
	}

	m = press(m, "ctrl+r")
	if m.Config.Framework != project.DefaultFramework || m.Config.Name != project.DefaultName {
		t.Errorf("reset config = %+v", m.Config)
	}
}

func TestFormModel_Preview(t *testing.T) {
	next, _ := newTestForm().Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	m := next.(FormModel)
	if !strings.Contains(m.View(), "View Files") {
		t.Error("structure tab should offer View Files")
	}

	m = press(m, "ctrl+p", "ctrl+f")
	if m.previewTab != preview.TabFiles || m.previewFramework != "symfony" {
		t.Fatalf("preview = %s/%s", m.previewFramework, m.previewTab)
	}
	if m.Config.Framework != project.DefaultFramework {
		t.Error("preview selector must not change the form framework")
	}
	view := m.View()
	for _, want := range []string{"src/Controller/HomeController.php", "composer.json", "View Structure"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestFormModel_Quit(t *testing.T) {
	_, cmd := newTestForm().Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should return tea.Quit")
	}
}

func TestCycle(t *testing.T) {
	items := []string{"a", "b", "c"}
	tests := []struct {
		cur   string
		delta int
		want  string
	}{
		{"a", 1, "b"},
		{"c", 1, "a"},
		{"a", -1, "c"},
		{"x", 1, "a"},
	}
	for _, tt := range tests {
		if got := cycle(items, tt.cur, tt.delta); got != tt.want {
			t.Errorf("cycle(%q, %d) = %q, want %q", tt.cur, tt.delta, got, tt.want)
		}
	}
}

func TestClipLines(t *testing.T) {
	if got := clipLines("a\nb\n", 5); got != "a\nb" {
		t.Errorf("clipLines short = %q", got)
	}
	got := clipLines("1\n2\n3\n4", 2)
	if !strings.HasPrefix(got, "1\n2\n") || !strings.Contains(got, "2 more lines") {
		t.Errorf("clipLines long = %q", got)
	}
}
