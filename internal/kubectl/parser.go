package kubectl

import (
	"strings"

	"github.com/giantswarm/kubectl-sandbox/internal/catalog"
)

// Prefix is the literal every accepted command starts with.
const Prefix = "kubectl"

// Flag names that select the namespace, in precedence order.
const (
	flagNamespace      = "namespace"
	flagNamespaceShort = "n"
)

// Command is a parsed kubectl invocation. It is built once by Parse and
// treated as read-only afterwards.
type Command struct {
	// Action is the verb, taken verbatim (get, describe, ...).
	Action string
	// Resource is the resource type as typed, e.g. "po".
	Resource string
	// Kind is the canonical kind Resource folds into, or "" if unrecognized.
	Kind string
	// Name is the fourth token verbatim, empty when absent. A leading "-"
	// does not make it a flag.
	Name string
	// Namespace is never empty.
	Namespace string
	// Flags holds every token after the name that starts with "-", in order.
	Flags []string

	flagValues map[string]string
}

// Flag returns the value of a parsed flag. Boolean flags have an empty value.
func (c Command) Flag(name string) (string, bool) {
	v, ok := c.flagValues[name]
	return v, ok
}

// ValidatePrefix checks that raw is non-empty and starts with "kubectl" once trimmed.
func ValidatePrefix(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return invalidPrefixError("")
	}
	if !strings.HasPrefix(trimmed, Prefix) {
		return invalidPrefixError(trimmed)
	}
	return nil
}

// Parse splits a raw command into a Command. It never fails: absent tokens
// are left empty and the namespace falls back to "default".
func Parse(raw string) Command {
	return ParseWithNamespace(raw, "")
}

// ParseWithNamespace is Parse with a caller supplied fallback namespace,
// used when the command itself names none. An empty fallback means "default".
func ParseWithNamespace(raw, fallback string) Command {
	tokens := strings.Fields(raw)

	cmd := Command{
		Action:   tokenAt(tokens, 1),
		Resource: tokenAt(tokens, 2),
		Name:     tokenAt(tokens, 3),
	}
	if kind, ok := catalog.Normalize(cmd.Resource); ok {
		cmd.Kind = kind
	}

	if len(tokens) > 4 {
		for _, tok := range tokens[4:] {
			if strings.HasPrefix(tok, "-") {
				cmd.Flags = append(cmd.Flags, tok)
			}
		}
	}

	if len(tokens) > 1 {
		cmd.flagValues = parseFlags(tokens[1:])
	}
	cmd.Namespace = resolveNamespace(cmd.flagValues, fallback)

	return cmd
}

func tokenAt(tokens []string, i int) string {
	if i < len(tokens) {
		return tokens[i]
	}
	return ""
}

// parseFlags builds the flag map. Long flags take a value only in the
// "--name=value" form. Short flags take the following token as their value
// unless it is itself a flag. The first non-empty value of a flag wins.
func parseFlags(tokens []string) map[string]string {
	values := make(map[string]string)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case strings.HasPrefix(tok, "--"):
			name, value, _ := strings.Cut(tok[2:], "=")
			setFlag(values, name, value)
		case strings.HasPrefix(tok, "-") && len(tok) > 1:
			value := ""
			if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") {
				value = tokens[i+1]
				i++
			}
			setFlag(values, tok[1:], value)
		}
	}
	return values
}

func setFlag(values map[string]string, name, value string) {
	if name == "" {
		return
	}
	if current, ok := values[name]; ok && current != "" {
		return
	}
	values[name] = value
}

// resolveNamespace applies the namespace precedence: --namespace=, then -n,
// then the fallback, then "default".
func resolveNamespace(flags map[string]string, fallback string) string {
	for _, name := range []string{flagNamespace, flagNamespaceShort} {
		if v := flags[name]; v != "" {
			return v
		}
	}
	if fallback != "" {
		return fallback
	}
	return catalog.DefaultNamespace
}
