package instrumentation

import "testing"

func TestClassifyNamespace(t *testing.T) {
	tests := []struct {
		namespace string
		want      string
	}{
		{"default", "default"},
		{"kube-system", "kube-system"},
		{"kube-public", "kube-public"},
		{"kube-node-lease", "kube-node-lease"},
		{"team-a", LabelOther},
		{"production", LabelOther},
		{"", LabelNone},
	}

	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			if got := ClassifyNamespace(tt.namespace); got != tt.want {
				t.Errorf("ClassifyNamespace(%q) = %q, want %q", tt.namespace, got, tt.want)
			}
		})
	}
}

func TestClassifyAction(t *testing.T) {
	supported := []string{"get", "describe", "apply", "delete"}

	tests := []struct {
		action string
		want   string
	}{
		{"get", "get"},
		{"delete", "delete"},
		{"exec", LabelOther},
		{"GET", LabelOther},
		{"", LabelNone},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			if got := ClassifyAction(tt.action, supported); got != tt.want {
				t.Errorf("ClassifyAction(%q) = %q, want %q", tt.action, got, tt.want)
			}
		})
	}
}

func TestClassifyKind(t *testing.T) {
	if got := ClassifyKind("pods"); got != "pods" {
		t.Errorf("ClassifyKind(pods) = %q", got)
	}
	if got := ClassifyKind(""); got != LabelNone {
		t.Errorf("ClassifyKind(\"\") = %q, want %q", got, LabelNone)
	}
}
