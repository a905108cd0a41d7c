package instrumentation

import "slices"

// Cardinality management helpers for metrics.
//
// Actions, kinds and namespaces all come from user typed command text, so
// they must be folded into a bounded set before being used as metric labels.
// Traces and audit logs keep the raw values.

// Fallback label values.
const (
	LabelOther = "other"
	LabelNone  = "none"
)

// wellKnownNamespaces are kept verbatim as metric labels.
var wellKnownNamespaces = []string{
	"default",
	"kube-system",
	"kube-public",
	"kube-node-lease",
}

// ClassifyAction returns action if it is one of supported, LabelNone when it
// is empty, and LabelOther otherwise.
func ClassifyAction(action string, supported []string) string {
	return boundedLabel(action, supported)
}

// ClassifyKind returns the canonical kind, or LabelNone for commands whose
// resource did not resolve to a kind.
func ClassifyKind(kind string) string {
	if kind == "" {
		return LabelNone
	}
	return kind
}

// ClassifyNamespace keeps the well-known namespaces and folds every other
// namespace into LabelOther.
//
// Examples:
//
//	ClassifyNamespace("default")      // "default"
//	ClassifyNamespace("kube-system")  // "kube-system"
//	ClassifyNamespace("team-a")       // "other"
//	ClassifyNamespace("")             // "none"
func ClassifyNamespace(namespace string) string {
	return boundedLabel(namespace, wellKnownNamespaces)
}

func boundedLabel(value string, allowed []string) string {
	if value == "" {
		return LabelNone
	}
	if slices.Contains(allowed, value) {
		return value
	}
	return LabelOther
}
