package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/yaml"
)

// ErrInvalidCatalog is returned when a catalog document fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// File is the on-disk catalog document.
//
//	pods:
//	  - name: web-app
//	    namespace: default
//	    status: Running
//	    age: 2d
//	    ready: 1/1
type File struct {
	Pods        []Pod        `json:"pods,omitempty"`
	Services    []Service    `json:"services,omitempty"`
	Deployments []Deployment `json:"deployments,omitempty"`
	Nodes       []Node       `json:"nodes,omitempty"`
}

// LoadFile reads a YAML or JSON catalog document from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return c, nil
}

// Load parses a YAML or JSON catalog document. Unknown fields are rejected.
// Namespaced records without a namespace are placed in DefaultNamespace.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc File
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	for i := range doc.Pods {
		doc.Pods[i].Namespace = namespaceOrDefault(doc.Pods[i].Namespace)
	}
	for i := range doc.Services {
		doc.Services[i].Namespace = namespaceOrDefault(doc.Services[i].Namespace)
	}
	for i := range doc.Deployments {
		doc.Deployments[i].Namespace = namespaceOrDefault(doc.Deployments[i].Namespace)
	}

	c := New(doc.Pods, doc.Services, doc.Deployments, doc.Nodes)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Marshal renders the catalog as a YAML document accepted by Load.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(File{
		Pods:        c.Pods(),
		Services:    c.Services(),
		Deployments: c.Deployments(),
		Nodes:       c.Nodes(),
	})
}

// validate rejects empty names and duplicate names within a kind and namespace.
func (c *Catalog) validate() error {
	for _, kind := range builtinKinds {
		seen := sets.New[string]()
		for i, r := range c.records[kind.Name] {
			if r.GetName() == "" {
				return fmt.Errorf("%w: %s[%d] has no name", ErrInvalidCatalog, kind.Name, i)
			}
			key := r.GetNamespace() + "/" + r.GetName()
			if seen.Has(key) {
				return fmt.Errorf("%w: duplicate %s %q", ErrInvalidCatalog, kind.Singular, key)
			}
			seen.Insert(key)
		}
	}
	return nil
}

func namespaceOrDefault(ns string) string {
	if ns == "" {
		return DefaultNamespace
	}
	return ns
}
