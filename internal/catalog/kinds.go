package catalog

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Canonical resource kind names. These are the only keys the catalog and the
// executor dispatch on; every alias is folded into one of them by Normalize.
const (
	KindPods        = "pods"
	KindServices    = "services"
	KindDeployments = "deployments"
	KindNodes       = "nodes"

	// KindAll is the meta-kind used by "get all". It has no records of its own.
	KindAll = "all"
)

// Kind describes one simulated resource kind.
type Kind struct {
	// Name is the canonical plural resource name, e.g. "pods".
	Name string
	// Singular is the singular resource name, e.g. "pod".
	Singular string
	// ShortNames are the abbreviated aliases, e.g. "po".
	ShortNames []string
	// Kind is the object kind, e.g. "Pod".
	Kind string
	// GroupVersion is the API group version the kind is served from.
	GroupVersion schema.GroupVersion
	// Namespaced is false for cluster scoped kinds such as nodes.
	Namespaced bool
}

// GroupVersionResource returns the GVR of the kind.
func (k Kind) GroupVersionResource() schema.GroupVersionResource {
	return k.GroupVersion.WithResource(k.Name)
}

// GroupVersionKind returns the GVK of the kind.
func (k Kind) GroupVersionKind() schema.GroupVersionKind {
	return k.GroupVersion.WithKind(k.Kind)
}

// APIVersion returns the apiVersion string as printed by kubectl api-resources.
func (k Kind) APIVersion() string {
	return k.GroupVersion.String()
}

// Aliases returns every string that normalizes to this kind, canonical name first.
func (k Kind) Aliases() []string {
	aliases := make([]string, 0, 2+len(k.ShortNames))
	aliases = append(aliases, k.Name, k.Singular)
	return append(aliases, k.ShortNames...)
}

// builtinKinds lists the simulated kinds in display order.
var builtinKinds = []Kind{
	{
		Name:         KindPods,
		Singular:     "pod",
		ShortNames:   []string{"po"},
		Kind:         "Pod",
		GroupVersion: corev1.SchemeGroupVersion,
		Namespaced:   true,
	},
	{
		Name:         KindServices,
		Singular:     "service",
		ShortNames:   []string{"svc"},
		Kind:         "Service",
		GroupVersion: corev1.SchemeGroupVersion,
		Namespaced:   true,
	},
	{
		Name:         KindDeployments,
		Singular:     "deployment",
		ShortNames:   []string{"deploy"},
		Kind:         "Deployment",
		GroupVersion: appsv1.SchemeGroupVersion,
		Namespaced:   true,
	},
	{
		Name:         KindNodes,
		Singular:     "node",
		ShortNames:   []string{"no"},
		Kind:         "Node",
		GroupVersion: corev1.SchemeGroupVersion,
		Namespaced:   false,
	},
}

// aliasIndex maps every accepted alias to its canonical kind name.
var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	index := map[string]string{KindAll: KindAll}
	for _, k := range builtinKinds {
		for _, alias := range k.Aliases() {
			index[alias] = k.Name
		}
	}
	return index
}

// Kinds returns the registered kinds in display order.
func Kinds() []Kind {
	kinds := make([]Kind, len(builtinKinds))
	copy(kinds, builtinKinds)
	return kinds
}

// Normalize folds a resource alias into its canonical kind name.
// "all" normalizes to KindAll. Matching is exact, as kubectl short names are
// lowercase. The boolean is false for unrecognized strings.
func Normalize(resource string) (string, bool) {
	canonical, ok := aliasIndex[resource]
	return canonical, ok
}

// LookupKind returns the registered kind for a canonical name or alias.
// The meta-kind "all" is not a registered kind.
func LookupKind(resource string) (Kind, bool) {
	canonical, ok := Normalize(resource)
	if !ok || canonical == KindAll {
		return Kind{}, false
	}
	for _, k := range builtinKinds {
		if k.Name == canonical {
			return k, true
		}
	}
	return Kind{}, false
}
