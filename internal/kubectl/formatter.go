package kubectl

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/giantswarm/kubectl-sandbox/internal/catalog"
)

// Fixed outputs of the kind-independent actions.
const (
	applyOutput = "✅ Resource created/updated successfully!\n\n" +
		"This is a simulated environment. In a real cluster, your manifest would be applied."

	deleteOutputFormat = "✅ %s/%s deleted\n\n" +
		"This is a simulated environment. In a real cluster, the resource would be deleted."

	clusterInfoOutput = "Kubernetes control plane is running at https://kubernetes.docker.internal:6443\n" +
		"CoreDNS is running at https://kubernetes.docker.internal:6443/api/v1/namespaces/kube-system/services/kube-dns:dns/proxy\n\n" +
		"To further debug and diagnose cluster problems, use 'kubectl cluster-info dump'."

	versionOutput = `Client Version: version.Info{Major:"1", Minor:"28", GitVersion:"v1.28.0"}` + "\n" +
		`Server Version: version.Info{Major:"1", Minor:"28", GitVersion:"v1.28.0"}`

	apiResourcesOutput = "NAME\t\tSHORTNAMES\tAPIVERSION\t\tNAMESPACED\tKIND\n" +
		"pods\t\tpo\t\tv1\t\t\ttrue\t\tPod\n" +
		"services\tsvc\t\tv1\t\t\ttrue\t\tService\n" +
		"deployments\tdeploy\t\tapps/v1\t\t\ttrue\t\tDeployment\n" +
		"nodes\t\tno\t\tv1\t\t\tfalse\t\tNode\n"

	// describeImage is the image every simulated container reports.
	describeImage = "nginx:latest"

	noneValue = "<none>"
)

// column is one table column. Separators are the literal tab runs written
// after the cell. Header and rows use different runs; there is no width
// computation.
type column struct {
	title     string
	headerSep string
	rowSep    string
}

// table renders one resource kind.
type table struct {
	columns []column
	row     func(catalog.Record) []string
}

var tables = map[string]table{
	catalog.KindPods: {
		columns: []column{
			{"NAME", "\t\t", "\t"},
			{"READY", "\t", "\t"},
			{"STATUS", "\t", "\t"},
			{"RESTARTS", "\t", "\t\t"},
			{"AGE", "", ""},
		},
		row: func(r catalog.Record) []string {
			p := r.(catalog.Pod)
			return []string{p.Name, p.Ready, p.Status, "0", p.Age}
		},
	},
	catalog.KindServices: {
		columns: []column{
			{"NAME", "\t\t", "\t"},
			{"TYPE", "\t\t", "\t"},
			{"CLUSTER-IP", "\t", "\t"},
			{"EXTERNAL-IP", "\t", "\t\t"},
			{"PORT(S)", "\t\t", "\t\t"},
			{"AGE", "", ""},
		},
		row: func(r catalog.Record) []string {
			s := r.(catalog.Service)
			return []string{
				s.Name,
				s.Type,
				firstNonEmpty(s.ClusterIP, noneValue),
				firstNonEmpty(s.ExternalIP, s.ClusterIP, noneValue),
				s.Ports,
				s.Age,
			}
		},
	},
	catalog.KindDeployments: {
		columns: []column{
			{"NAME", "\t\t", "\t"},
			{"READY", "\t", "\t"},
			{"UP-TO-DATE", "\t", "\t\t"},
			{"AVAILABLE", "\t", "\t\t"},
			{"AGE", "", ""},
		},
		row: func(r catalog.Record) []string {
			d := r.(catalog.Deployment)
			return []string{d.Name, d.Ready, d.UpToDate, d.Available, d.Age}
		},
	},
	catalog.KindNodes: {
		columns: []column{
			{"NAME", "\t\t", "\t"},
			{"STATUS", "\t", "\t"},
			{"ROLES", "\t\t", "\t"},
			{"AGE", "\t", "\t"},
			{"VERSION", "", ""},
		},
		row: func(r catalog.Record) []string {
			n := r.(catalog.Node)
			return []string{n.Name, n.Status, n.Role, n.Age, n.Version}
		},
	},
}

// render writes the header and one line per record, each newline terminated.
func (t table) render(records []catalog.Record) string {
	var b strings.Builder
	for _, c := range t.columns {
		b.WriteString(c.title)
		b.WriteString(c.headerSep)
	}
	b.WriteByte('\n')

	for _, r := range records {
		cells := t.row(r)
		for i, c := range t.columns {
			b.WriteString(cells[i])
			b.WriteString(c.rowSep)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func formatNoResources(namespace string) string {
	return fmt.Sprintf("No resources found in %s namespace.", namespace)
}

// formatCounts renders the "get all" summary: one count line per namespaced kind.
func formatCounts(namespace string, kinds []catalog.Kind, count func(kind string) int) string {
	title := cases.Title(language.English)

	var b strings.Builder
	fmt.Fprintf(&b, "Resources in %s namespace:\n\n", namespace)
	for _, k := range kinds {
		if !k.Namespaced {
			continue
		}
		fmt.Fprintf(&b, "%s: %d\n", title.String(k.Name), count(k.Name))
	}
	return b.String()
}

func formatPodDescription(p catalog.Pod) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:         %s\n", p.Name)
	fmt.Fprintf(&b, "Namespace:    %s\n", p.Namespace)
	fmt.Fprintf(&b, "Status:       %s\n", p.Status)
	fmt.Fprintf(&b, "Ready:        %s\n", p.Ready)
	fmt.Fprintf(&b, "Age:          %s\n", p.Age)
	b.WriteString("\nContainers:\n")
	fmt.Fprintf(&b, "  %s:\n", p.Name)
	fmt.Fprintf(&b, "    Image:     %s\n", describeImage)
	b.WriteString("    Ready:     True\n")
	b.WriteString("    Restarts:  0\n")
	return b.String()
}

func formatDeleted(resource, name string) string {
	return fmt.Sprintf(deleteOutputFormat, resource, name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
