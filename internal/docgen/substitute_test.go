package docgen

import (
	"strings"
	"testing"
)

func TestSubstituteBasicScenario(t *testing.T) {
	template := "Nom: {{CLIENT_NAME}}, Police: {{POLICY_NUMBER}}"
	vars := VariableSet{
		"CLIENT_NAME":   "Jean Dupont",
		"POLICY_NUMBER": "AXA-123",
	}

	got := Substitute(template, vars)
	want := "Nom: Jean Dupont, Police: AXA-123"
	if got != want {
		t.Errorf("Substitute() = %q, want %q", got, want)
	}
}

func TestSubstituteMissingKeyYieldsEmpty(t *testing.T) {
	template := "Nom: {{CLIENT_NAME}}, Police: {{POLICY_NUMBER}}"
	vars := VariableSet{"CLIENT_NAME": "Jean Dupont"}

	got := Substitute(template, vars)
	want := "Nom: Jean Dupont, Police: "
	if got != want {
		t.Errorf("Substitute() = %q, want %q", got, want)
	}
}

func TestSubstituteReplacesAllOccurrences(t *testing.T) {
	template := "{{NOM}} / {{NOM}} / {{NOM}}"
	vars := VariableSet{"NOM": "Müller"}

	got := Substitute(template, vars)
	want := "Müller / Müller / Müller"
	if got != want {
		t.Errorf("Substitute() = %q, want %q", got, want)
	}
}

func TestSubstituteIsIdempotent(t *testing.T) {
	template := "A: {{A}}, B: {{B}}, C: {{UNDECLARED}}"
	vars := VariableSet{"A": "un", "B": "deux"}

	once := Substitute(template, vars)
	twice := Substitute(once, vars)
	if once != twice {
		t.Errorf("second substitution changed the output: %q != %q", once, twice)
	}
	if strings.Contains(once, "{{") {
		t.Errorf("a token survived substitution: %q", once)
	}
}

func TestSubstituteIsDeterministic(t *testing.T) {
	template := "{{X}}-{{Y}}-{{X}}"
	vars := VariableSet{"X": "a", "Y": "b"}

	first := Substitute(template, vars)
	for i := 0; i < 10; i++ {
		if got := Substitute(template, vars); got != first {
			t.Fatalf("run %d produced %q, first run produced %q", i, got, first)
		}
	}
}

func TestSubstituteValueCarryingTokenIsNotReExpanded(t *testing.T) {
	// a value containing token-shaped text must be emitted verbatim,
	// regardless of map iteration order
	template := "{{A}}"
	vars := VariableSet{"A": "{{B}}", "B": "x"}

	first := Substitute(template, vars)
	if first != "{{B}}" {
		t.Errorf("Substitute() = %q, want the literal value %q", first, "{{B}}")
	}
	for i := 0; i < 20; i++ {
		if got := Substitute(template, vars); got != first {
			t.Fatalf("run %d produced %q, first run produced %q", i, got, first)
		}
	}
}

func TestSubstituteEmptyTemplate(t *testing.T) {
	if got := Substitute("", VariableSet{"A": "x"}); got != "" {
		t.Errorf("Substitute(\"\") = %q, want empty", got)
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"none", "pas de token ici", nil},
		{"single", "Nom: {{NOM}}", []string{"NOM"}},
		{"dedup in order", "{{B}} {{A}} {{B}}", []string{"B", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Placeholders(tt.template)
			if len(got) != len(tt.want) {
				t.Fatalf("Placeholders() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Placeholders()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
