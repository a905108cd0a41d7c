package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input     string
		canonical string
		ok        bool
	}{
		{"pods", KindPods, true},
		{"pod", KindPods, true},
		{"po", KindPods, true},
		{"services", KindServices, true},
		{"service", KindServices, true},
		{"svc", KindServices, true},
		{"deployments", KindDeployments, true},
		{"deployment", KindDeployments, true},
		{"deploy", KindDeployments, true},
		{"nodes", KindNodes, true},
		{"node", KindNodes, true},
		{"no", KindNodes, true},
		{"all", KindAll, true},
		{"configmaps", "", false},
		{"Pods", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			canonical, ok := Normalize(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.canonical, canonical)
		})
	}
}

func TestLookupKind(t *testing.T) {
	k, ok := LookupKind("deploy")
	require.True(t, ok)
	assert.Equal(t, "Deployment", k.Kind)
	assert.Equal(t, "apps/v1", k.APIVersion())
	assert.Equal(t, "apps", k.GroupVersionResource().Group)
	assert.Equal(t, "deployments", k.GroupVersionResource().Resource)
	assert.Equal(t, "Deployment", k.GroupVersionKind().Kind)
	assert.True(t, k.Namespaced)

	k, ok = LookupKind("no")
	require.True(t, ok)
	assert.Equal(t, "v1", k.APIVersion())
	assert.False(t, k.Namespaced)

	_, ok = LookupKind("all")
	assert.False(t, ok, "all is a meta-kind, not a registered kind")

	_, ok = LookupKind("ingresses")
	assert.False(t, ok)
}

func TestKinds_DisplayOrderAndCopy(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 4)

	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.Name)
	}
	assert.Equal(t, []string{KindPods, KindServices, KindDeployments, KindNodes}, names)

	kinds[0].Name = "mutated"
	assert.Equal(t, KindPods, Kinds()[0].Name)
}

func TestKind_Aliases(t *testing.T) {
	k, ok := LookupKind("svc")
	require.True(t, ok)
	assert.Equal(t, []string{"services", "service", "svc"}, k.Aliases())

	for _, kind := range Kinds() {
		for _, alias := range kind.Aliases() {
			canonical, ok := Normalize(alias)
			assert.True(t, ok, alias)
			assert.Equal(t, kind.Name, canonical, alias)
		}
	}
}
