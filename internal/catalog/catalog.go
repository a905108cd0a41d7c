package catalog

// Pod is a simulated pod record.
type Pod struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Status    string `json:"status"`
	Age       string `json:"age"`
	Ready     string `json:"ready"`
}

// Service is a simulated service record. ClusterIP and ExternalIP may be empty.
type Service struct {
	Name       string `json:"name"`
	Namespace  string `json:"namespace"`
	Type       string `json:"type"`
	ClusterIP  string `json:"clusterIP,omitempty"`
	ExternalIP string `json:"externalIP,omitempty"`
	Ports      string `json:"ports"`
	Age        string `json:"age"`
}

// Deployment is a simulated deployment record.
type Deployment struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Ready     string `json:"ready"`
	UpToDate  string `json:"upToDate"`
	Available string `json:"available"`
	Age       string `json:"age"`
}

// Node is a simulated node record. Nodes are cluster scoped.
type Node struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Role    string `json:"role"`
	Age     string `json:"age"`
	Version string `json:"version"`
}

// Record is implemented by every catalog record type.
type Record interface {
	GetName() string
	// GetNamespace returns "" for cluster scoped records.
	GetNamespace() string
}

func (p Pod) GetName() string { return p.Name }
func (p Pod) GetNamespace() string { return p.Namespace }
func (s Service) GetName() string { return s.Name }
func (s Service) GetNamespace() string { return s.Namespace }
func (d Deployment) GetName() string { return d.Name }
func (d Deployment) GetNamespace() string { return d.Namespace }
func (n Node) GetName() string { return n.Name }
func (n Node) GetNamespace() string { return "" }

// Catalog is an immutable snapshot of simulated cluster state.
//
// A Catalog is built once and shared by reference. No method mutates it and
// every accessor returns a fresh slice of value records, so it is safe for
// concurrent use without locking.
type Catalog struct {
	records map[string][]Record
}

// New builds a Catalog from the given records. The input slices are copied.
func New(pods []Pod, services []Service, deployments []Deployment, nodes []Node) *Catalog {
	c := &Catalog{records: make(map[string][]Record, len(builtinKinds))}
	for _, p := range pods {
		c.records[KindPods] = append(c.records[KindPods], p)
	}
	for _, s := range services {
		c.records[KindServices] = append(c.records[KindServices], s)
	}
	for _, d := range deployments {
		c.records[KindDeployments] = append(c.records[KindDeployments], d)
	}
	for _, n := range nodes {
		c.records[KindNodes] = append(c.records[KindNodes], n)
	}
	return c
}

// Lookup returns the records of a canonical kind in display order, filtered
// by exact name when name is non-empty. Unknown kinds yield no records.
func (c *Catalog) Lookup(kind, name string) []Record {
	return c.LookupInNamespace(kind, "", name)
}

// LookupInNamespace is Lookup restricted to one namespace. The namespace
// filter only applies to namespaced kinds; an empty namespace matches all.
func (c *Catalog) LookupInNamespace(kind, namespace, name string) []Record {
	var out []Record
	for _, r := range c.records[kind] {
		if name != "" && r.GetName() != name {
			continue
		}
		if namespace != "" && r.GetNamespace() != "" && r.GetNamespace() != namespace {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Count returns the number of records of a kind visible in namespace.
func (c *Catalog) Count(kind, namespace string) int {
	return len(c.LookupInNamespace(kind, namespace, ""))
}

// Pods returns a copy of the pod records.
func (c *Catalog) Pods() []Pod {
	return recordsOf[Pod](c.records[KindPods])
}

// Services returns a copy of the service records.
func (c *Catalog) Services() []Service {
	return recordsOf[Service](c.records[KindServices])
}

// Deployments returns a copy of the deployment records.
func (c *Catalog) Deployments() []Deployment {
	return recordsOf[Deployment](c.records[KindDeployments])
}

// Nodes returns a copy of the node records.
func (c *Catalog) Nodes() []Node {
	return recordsOf[Node](c.records[KindNodes])
}

func recordsOf[T Record](records []Record) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if v, ok := r.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
