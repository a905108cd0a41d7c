package kubectl

import (
	"github.com/giantswarm/kubectl-sandbox/internal/catalog"
)

// Supported actions.
const (
	ActionGet          = "get"
	ActionDescribe     = "describe"
	ActionApply        = "apply"
	ActionDelete       = "delete"
	ActionClusterInfo  = "cluster-info"
	ActionVersion      = "version"
	ActionAPIResources = "api-resources"
)

// Actions returns the supported actions in help-text order.
func Actions() []string {
	return []string{
		ActionGet,
		ActionDescribe,
		ActionApply,
		ActionDelete,
		ActionClusterInfo,
		ActionVersion,
		ActionAPIResources,
	}
}

// anyKind is the route wildcard for handlers that do not depend on the kind.
const anyKind = "*"

// ExecutionResult is the outcome of one command. On failure Output is empty
// and Error holds the user-facing message.
type ExecutionResult struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Error   string `json:"error,omitempty"`

	// Err is the typed failure, matchable with errors.Is against the Err* sentinels.
	Err error `json:"-"`
}

type route struct {
	action string
	kind   string
}

type handlerFunc func(e *Executor, cmd Command) (string, error)

// Executor runs parsed commands against a catalog. It holds no mutable
// state and is safe for concurrent use.
type Executor struct {
	catalog *catalog.Catalog
	routes  map[route]handlerFunc
}

// NewExecutor returns an Executor over c. A nil catalog means catalog.Default().
func NewExecutor(c *catalog.Catalog) *Executor {
	if c == nil {
		c = catalog.Default()
	}
	return &Executor{
		catalog: c,
		routes:  buildRoutes(),
	}
}

// Catalog returns the catalog the executor reads from.
func (e *Executor) Catalog() *catalog.Catalog {
	return e.catalog
}

// buildRoutes returns the dispatch table keyed by (action, canonical kind).
// A route on anyKind is the fallback for its action.
func buildRoutes() map[route]handlerFunc {
	routes := map[route]handlerFunc{
		{ActionGet, catalog.KindAll}:       (*Executor).getAll,
		{ActionGet, anyKind}:               (*Executor).getUnknown,
		{ActionDescribe, catalog.KindPods}: (*Executor).describePod,
		{ActionDescribe, anyKind}:          (*Executor).describeUnsupported,
		{ActionApply, anyKind}:             (*Executor).apply,
		{ActionDelete, anyKind}:            (*Executor).deleteObject,
		{ActionClusterInfo, anyKind}:       fixed(clusterInfoOutput),
		{ActionVersion, anyKind}:           fixed(versionOutput),
		{ActionAPIResources, anyKind}:      fixed(apiResourcesOutput),
	}
	for kind := range tables {
		routes[route{ActionGet, kind}] = (*Executor).getTable
	}
	return routes
}

// Execute validates, parses and runs raw.
func (e *Executor) Execute(raw string) ExecutionResult {
	return e.ExecuteInNamespace(raw, "")
}

// ExecuteInNamespace is Execute with a fallback namespace used when the
// command carries no namespace flag.
func (e *Executor) ExecuteInNamespace(raw, namespace string) ExecutionResult {
	if err := ValidatePrefix(raw); err != nil {
		return failure(err)
	}
	return e.Run(ParseWithNamespace(raw, namespace))
}

// Run executes an already parsed command. A panic while building output is
// converted into an ErrInternalExecution failure.
func (e *Executor) Run(cmd Command) (result ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(internalError(r))
		}
	}()

	output, err := e.dispatch(cmd)
	if err != nil {
		return failure(err)
	}
	return ExecutionResult{Success: true, Output: output}
}

func (e *Executor) dispatch(cmd Command) (string, error) {
	if cmd.Action == "" {
		return "", missingActionError()
	}
	if err := checkArguments(cmd); err != nil {
		return "", err
	}

	if h, ok := e.routes[route{cmd.Action, cmd.Kind}]; ok {
		return h(e, cmd)
	}
	if h, ok := e.routes[route{cmd.Action, anyKind}]; ok {
		return h(e, cmd)
	}
	return "", unknownActionError(cmd.Action)
}

// checkArguments enforces the positional arguments each action requires.
func checkArguments(cmd Command) error {
	switch cmd.Action {
	case ActionGet:
		if cmd.Resource == "" {
			return missingResourceError()
		}
	case ActionDescribe, ActionDelete:
		if cmd.Resource == "" || cmd.Name == "" {
			return missingResourceOrNameError(cmd.Action)
		}
	}
	return nil
}

func failure(err error) ExecutionResult {
	return ExecutionResult{Success: false, Error: err.Error(), Err: err}
}

func fixed(output string) handlerFunc {
	return func(*Executor, Command) (string, error) {
		return output, nil
	}
}

func (e *Executor) getTable(cmd Command) (string, error) {
	records := e.catalog.LookupInNamespace(cmd.Kind, cmd.Namespace, cmd.Name)
	if len(records) == 0 {
		return formatNoResources(cmd.Namespace), nil
	}
	return tables[cmd.Kind].render(records), nil
}

func (e *Executor) getAll(cmd Command) (string, error) {
	return formatCounts(cmd.Namespace, catalog.Kinds(), func(kind string) int {
		return e.catalog.Count(kind, cmd.Namespace)
	}), nil
}

func (e *Executor) getUnknown(cmd Command) (string, error) {
	return "", unknownResourceError(cmd.Resource)
}

func (e *Executor) describePod(cmd Command) (string, error) {
	records := e.catalog.LookupInNamespace(catalog.KindPods, cmd.Namespace, cmd.Name)
	if len(records) == 0 {
		return "", notFoundError(catalog.KindPods, cmd.Name)
	}
	return formatPodDescription(records[0].(catalog.Pod)), nil
}

func (e *Executor) describeUnsupported(cmd Command) (string, error) {
	return "", notImplementedError(cmd.Action, cmd.Resource)
}

func (e *Executor) apply(Command) (string, error) {
	return applyOutput, nil
}

func (e *Executor) deleteObject(cmd Command) (string, error) {
	return formatDeleted(cmd.Resource, cmd.Name), nil
}
