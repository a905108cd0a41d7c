package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/giantswarm/kubectl-sandbox/internal/kubectl"
	"github.com/giantswarm/kubectl-sandbox/internal/logging"
)

// DefaultAPIPath is where the kubectl API is mounted unless configured otherwise.
const DefaultAPIPath = "/api/kubectl"

// KubectlRequest is the POST body accepted by the kubectl API.
type KubectlRequest struct {
	Command   string `json:"command"`
	Namespace string `json:"namespace,omitempty"`
}

// KubectlResponse is returned for every executed command.
type KubectlResponse struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Command string `json:"command,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse is returned when a request is rejected before execution.
type ErrorResponse struct {
	Error          string   `json:"error"`
	Message        string   `json:"message,omitempty"`
	AllowedMethods []string `json:"allowedMethods,omitempty"`
}

// CapabilityDocument describes the API; it is served on GET.
type CapabilityDocument struct {
	Message           string            `json:"message"`
	Status            string            `json:"status"`
	Description       string            `json:"description"`
	Endpoints         map[string]string `json:"endpoints"`
	Usage             CapabilityUsage   `json:"usage"`
	SupportedCommands []string          `json:"supportedCommands"`
}

// CapabilityUsage documents the request shape.
type CapabilityUsage struct {
	Method string            `json:"method"`
	Body   map[string]string `json:"body"`
}

var supportedCommands = []string{
	"kubectl get pods",
	"kubectl get services",
	"kubectl get deployments",
	"kubectl get nodes",
	"kubectl describe pod <name>",
	"kubectl apply -f <file>",
	"kubectl delete pod <name>",
	"kubectl cluster-info",
	"kubectl version",
	"kubectl api-resources",
}

var allowedMethods = []string{http.MethodPost, http.MethodGet, http.MethodOptions}

// KubectlHandler serves the simulated kubectl API.
type KubectlHandler struct {
	serverContext *ServerContext
}

// NewKubectlHandler returns the API handler backed by sc.
func NewKubectlHandler(sc *ServerContext) *KubectlHandler {
	return &KubectlHandler{serverContext: sc}
}

// ServeHTTP dispatches on method. A panic anywhere below is answered with 500.
func (h *KubectlHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.serverContext.Logger().Error("kubectl API panic", logging.Host(r.RemoteAddr), logging.Err(panicError(rec)))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:   "Internal server error",
				Message: panicError(rec).Error(),
			})
		}
	}()

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.capabilities())
	case http.MethodPost:
		h.execute(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error:          "Method not allowed",
			Message:        "This endpoint only accepts POST requests.",
			AllowedMethods: allowedMethods,
		})
	}
}

func (h *KubectlHandler) execute(w http.ResponseWriter, r *http.Request) {
	var req KubectlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.serverContext.Logger().Debug("rejected kubectl request body", logging.Host(r.RemoteAddr), logging.Err(err))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Command == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: kubectl.MessageCommandRequired})
		return
	}

	if err := kubectl.ValidatePrefix(req.Command); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid command",
			Message: kubectl.MessageInvalidPrefix,
		})
		return
	}

	result := h.serverContext.RunCommand(r.Context(), TransportHTTP, req.Command, req.Namespace)
	if !result.Success {
		message := result.Error
		if message == "" {
			message = "Command execution failed"
		}
		writeJSON(w, http.StatusBadRequest, KubectlResponse{
			Success: false,
			Output:  result.Output,
			Error:   message,
		})
		return
	}

	writeJSON(w, http.StatusOK, KubectlResponse{
		Success: true,
		Output:  result.Output,
		Command: strings.TrimSpace(req.Command),
	})
}

func (h *KubectlHandler) capabilities() CapabilityDocument {
	apiPath := h.serverContext.Config().APIPath
	if apiPath == "" {
		apiPath = DefaultAPIPath
	}
	return CapabilityDocument{
		Message:     "Kubernetes Explorer kubectl API (Simulated)",
		Status:      "active",
		Description: "This is a simulated kubectl API for learning purposes. It returns realistic responses without requiring a real Kubernetes cluster.",
		Endpoints: map[string]string{
			"kubectl":     "POST " + apiPath,
			"description": "Execute kubectl commands in a simulated environment",
		},
		Usage: CapabilityUsage{
			Method: http.MethodPost,
			Body: map[string]string{
				"command":   `string (required) - kubectl command (e.g., "kubectl get pods")`,
				"namespace": "string (optional) - namespace to use",
			},
		},
		SupportedCommands: supportedCommands,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func panicError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return errors.New(fmt.Sprint(rec))
}
