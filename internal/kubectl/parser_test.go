package kubectl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/kubectl-sandbox/internal/catalog"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		action    string
		resource  string
		kind      string
		objName   string
		namespace string
		flags     []string
	}{
		{
			name:      "get pods",
			raw:       "kubectl get pods",
			action:    "get",
			resource:  "pods",
			kind:      catalog.KindPods,
			namespace: "default",
		},
		{
			name:      "short namespace flag",
			raw:       "kubectl get pod web-app -n kube-system",
			action:    "get",
			resource:  "pod",
			kind:      catalog.KindPods,
			objName:   "web-app",
			namespace: "kube-system",
			flags:     []string{"-n"},
		},
		{
			name:      "long namespace flag wins over short",
			raw:       "kubectl get pod x --namespace=foo -n bar",
			action:    "get",
			resource:  "pod",
			kind:      catalog.KindPods,
			objName:   "x",
			namespace: "foo",
			flags:     []string{"--namespace=foo", "-n"},
		},
		{
			name:      "long namespace flag wins when it comes last",
			raw:       "kubectl get pod x -n bar --namespace=foo",
			action:    "get",
			resource:  "pod",
			kind:      catalog.KindPods,
			objName:   "x",
			namespace: "foo",
			flags:     []string{"-n", "--namespace=foo"},
		},
		{
			name:      "whitespace runs and padding",
			raw:       "   kubectl   describe\tsvc   web-service  ",
			action:    "describe",
			resource:  "svc",
			kind:      catalog.KindServices,
			objName:   "web-service",
			namespace: "default",
		},
		{
			name:      "bare kubectl",
			raw:       "kubectl",
			namespace: "default",
		},
		{
			name:      "unknown resource keeps raw string",
			raw:       "kubectl get ingresses",
			action:    "get",
			resource:  "ingresses",
			namespace: "default",
		},
		{
			name:      "flag in name position is still the name",
			raw:       "kubectl get pods -n kube-system",
			action:    "get",
			resource:  "pods",
			kind:      catalog.KindPods,
			objName:   "-n",
			namespace: "kube-system",
		},
		{
			name:      "output flag in name position",
			raw:       "kubectl get pods -o wide",
			action:    "get",
			resource:  "pods",
			kind:      catalog.KindPods,
			objName:   "-o",
			namespace: "default",
		},
		{
			name:      "long namespace flag without equals is ignored",
			raw:       "kubectl get pods x --namespace kube-system",
			action:    "get",
			resource:  "pods",
			kind:      catalog.KindPods,
			objName:   "x",
			namespace: "default",
			flags:     []string{"--namespace"},
		},
		{
			name:      "empty long namespace value falls through to short",
			raw:       "kubectl get pods x --namespace= -n dev",
			action:    "get",
			resource:  "pods",
			kind:      catalog.KindPods,
			objName:   "x",
			namespace: "dev",
			flags:     []string{"--namespace=", "-n"},
		},
		{
			name:      "dangling short flag",
			raw:       "kubectl get pods x -n",
			action:    "get",
			resource:  "pods",
			kind:      catalog.KindPods,
			objName:   "x",
			namespace: "default",
			flags:     []string{"-n"},
		},
		{
			name:      "duplicate flags preserved in order",
			raw:       "kubectl apply -f a.yaml -f b.yaml -f b.yaml --dry-run",
			action:    "apply",
			resource:  "-f",
			objName:   "a.yaml",
			namespace: "default",
			flags:     []string{"-f", "-f", "--dry-run"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Parse(tt.raw)
			assert.Equal(t, tt.action, cmd.Action)
			assert.Equal(t, tt.resource, cmd.Resource)
			assert.Equal(t, tt.kind, cmd.Kind)
			assert.Equal(t, tt.objName, cmd.Name)
			assert.Equal(t, tt.namespace, cmd.Namespace)
			assert.Equal(t, tt.flags, cmd.Flags)
		})
	}
}

func TestParseWithNamespace(t *testing.T) {
	cmd := ParseWithNamespace("kubectl get pods", "staging")
	assert.Equal(t, "staging", cmd.Namespace)

	cmd = ParseWithNamespace("kubectl get pods -n prod", "staging")
	assert.Equal(t, "prod", cmd.Namespace, "flags beat the fallback")

	cmd = ParseWithNamespace("kubectl get pods", "")
	assert.Equal(t, "default", cmd.Namespace)
}

func TestCommand_Flag(t *testing.T) {
	cmd := Parse("kubectl get pods web -o wide --show-labels --selector=app=web")

	v, ok := cmd.Flag("o")
	require.True(t, ok)
	assert.Equal(t, "wide", v)

	v, ok = cmd.Flag("show-labels")
	require.True(t, ok)
	assert.Empty(t, v)

	v, ok = cmd.Flag("selector")
	require.True(t, ok)
	assert.Equal(t, "app=web", v)

	_, ok = cmd.Flag("watch")
	assert.False(t, ok)

	_, ok = Parse("").Flag("n")
	assert.False(t, ok)
}

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
		message string
	}{
		{raw: "kubectl get pods"},
		{raw: "  kubectl version  "},
		{raw: "kubectl"},
		{raw: "", wantErr: true, message: MessageCommandRequired},
		{raw: "   ", wantErr: true, message: MessageCommandRequired},
		{raw: "not-kubectl get pods", wantErr: true, message: MessageInvalidPrefix},
		{raw: "kube get pods", wantErr: true, message: MessageInvalidPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := ValidatePrefix(tt.raw)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCommandPrefix)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}
