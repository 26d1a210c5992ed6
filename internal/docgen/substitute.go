package docgen

import (
	"regexp"
	"strings"
)

// tokenPattern matches any placeholder token, declared or not
var tokenPattern = regexp.MustCompile(`\{\{[A-Za-z0-9_]+\}\}`)

// Substitute replaces every occurrence of every {{KEY}} token in template
// with its value from vars. Tokens with no entry in vars are replaced with
// the empty string, so no template token survives substitution. Values are
// emitted verbatim in a single pass: token-shaped text inside a value is
// never re-expanded, and identical inputs always yield identical output.
func Substitute(template string, vars VariableSet) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "{{"), "}}")
		return vars.Get(name)
	})
}

// Placeholders lists the distinct tokens present in a template, in order of
// first appearance, without the surrounding braces
func Placeholders(template string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range tokenPattern.FindAllString(template, -1) {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "{{"), "}}")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
