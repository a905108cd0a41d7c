package catalog

// DefaultNamespace is the namespace used when a command names none.
const DefaultNamespace = "default"

// Default returns the built-in sandbox catalog.
func Default() *Catalog {
	return New(
		[]Pod{
			{Name: "web-app", Namespace: DefaultNamespace, Status: "Running", Age: "2d", Ready: "1/1"},
			{Name: "api-server", Namespace: DefaultNamespace, Status: "Running", Age: "1d", Ready: "1/1"},
			{Name: "database", Namespace: DefaultNamespace, Status: "Running", Age: "3d", Ready: "1/1"},
		},
		[]Service{
			{Name: "web-service", Namespace: DefaultNamespace, Type: "ClusterIP", ClusterIP: "10.96.0.1", Ports: "80/TCP", Age: "2d"},
			{Name: "api-service", Namespace: DefaultNamespace, Type: "LoadBalancer", ExternalIP: "<pending>", Ports: "8080/TCP", Age: "1d"},
		},
		[]Deployment{
			{Name: "web-app", Namespace: DefaultNamespace, Ready: "3/3", UpToDate: "3", Available: "3", Age: "2d"},
			{Name: "api-server", Namespace: DefaultNamespace, Ready: "2/2", UpToDate: "2", Available: "2", Age: "1d"},
		},
		[]Node{
			{Name: "node-1", Status: "Ready", Role: "control-plane", Age: "5d", Version: "v1.28.0"},
			{Name: "node-2", Status: "Ready", Role: "<none>", Age: "5d", Version: "v1.28.0"},
		},
	)
}
