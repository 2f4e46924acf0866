package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"netconfig/internal/domain"
	"netconfig/internal/service"
)

// NetworkHandler handles saved network API requests
type NetworkHandler struct {
	svc *service.NetworkService
}

// NewNetworkHandler creates a new network handler
func NewNetworkHandler(svc *service.NetworkService) *NetworkHandler {
	return &NetworkHandler{svc: svc}
}

// Routes registers the API routes on mux
func (h *NetworkHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/networks", h.ListNetworks)
	mux.HandleFunc("POST /api/networks", h.SaveNetwork)
	mux.HandleFunc("GET /api/networks/lookup", h.LookupProfileKey)
	mux.HandleFunc("GET /api/networks/{id}", h.GetNetwork)
	mux.HandleFunc("DELETE /api/networks/{id}", h.RemoveNetwork)

	mux.HandleFunc("POST /api/match", h.MatchScan)
	mux.HandleFunc("PUT /api/user", h.SwitchUser)
	mux.HandleFunc("GET /api/debug/dump", h.Dump)

	mux.HandleFunc("POST /api/import", h.Import)
	mux.HandleFunc("GET /api/export", h.Export)
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NetworkRequest is the body of POST /api/networks. Passphrase, when set,
// is turned into the stored key.
type NetworkRequest struct {
	domain.Configuration
	Passphrase string `json:"passphrase,omitempty"`
}

// ListResponse wraps a network listing
type ListResponse struct {
	Scope      service.Scope           `json:"scope"`
	ActiveUser int                     `json:"active_user"`
	Count      int                     `json:"count"`
	Networks   []*domain.Configuration `json:"networks"`
}

// UserRequest is the body of PUT /api/user
type UserRequest struct {
	UserID *int `json:"user_id"`
}

// ListNetworks returns the networks in the requested scope
func (h *NetworkHandler) ListNetworks(w http.ResponseWriter, r *http.Request) {
	scope := service.ParseScope(r.URL.Query().Get("scope"))
	networks := h.svc.List(scope)

	h.writeJSON(w, ListResponse{
		Scope:      scope,
		ActiveUser: h.svc.ActiveUser(),
		Count:      len(networks),
		Networks:   networks,
	}, http.StatusOK)
}

// GetNetwork returns a single network
func (h *NetworkHandler) GetNetwork(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	cfg, err := h.svc.Get(id, service.ParseScope(r.URL.Query().Get("scope")))
	if err != nil {
		h.writeServiceError(w, "Failed to get network", err)
		return
	}

	h.writeJSON(w, cfg, http.StatusOK)
}

// SaveNetwork stores a new network or replaces the one with the same ID
func (h *NetworkHandler) SaveNetwork(w http.ResponseWriter, r *http.Request) {
	var req NetworkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	cfg := req.Configuration
	raw := string(cfg.Security)
	if strings.TrimSpace(raw) == "" {
		h.writeError(w, "Invalid network", "security is required", http.StatusBadRequest)
		return
	}
	if cfg.Security = domain.ParseSecurityType(raw); cfg.Security == domain.SecurityUnknown {
		h.writeError(w, "Invalid network", fmt.Sprintf("unknown security type %q", raw), http.StatusBadRequest)
		return
	}
	// Save derives the raw key for psk networks
	if req.Passphrase != "" {
		cfg.PreSharedKey = req.Passphrase
	}

	prev, err := h.svc.Save(r.Context(), &cfg)
	if err != nil {
		log.Printf("Failed to save network %q: %v", cfg.SSID, err)
		h.writeError(w, "Failed to save network", err.Error(), http.StatusBadRequest)
		return
	}

	status := http.StatusCreated
	if prev != nil {
		status = http.StatusOK
	}
	h.writeJSON(w, cfg, status)
}

// RemoveNetwork deletes a network
func (h *NetworkHandler) RemoveNetwork(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if _, err := h.svc.Remove(r.Context(), id); err != nil {
		h.writeServiceError(w, "Failed to remove network", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LookupProfileKey finds a current-user network by profile key
func (h *NetworkHandler) LookupProfileKey(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		h.writeError(w, "Profile key is required", "", http.StatusBadRequest)
		return
	}

	cfg, err := h.svc.LookupProfileKey(key)
	if err != nil {
		h.writeServiceError(w, "Failed to look up profile key", err)
		return
	}

	h.writeJSON(w, cfg, http.StatusOK)
}

// MatchScan finds the saved network for an observed network
func (h *NetworkHandler) MatchScan(w http.ResponseWriter, r *http.Request) {
	var scan domain.ScanResult
	if err := json.NewDecoder(r.Body).Decode(&scan); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if scan.SSID == "" {
		h.writeError(w, "SSID is required", "", http.StatusBadRequest)
		return
	}

	cfg, err := h.svc.MatchScan(scan)
	if err != nil {
		h.writeServiceError(w, "No matching network", err)
		return
	}

	h.writeJSON(w, cfg, http.StatusOK)
}

// SwitchUser changes the foreground user
func (h *NetworkHandler) SwitchUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == nil || *req.UserID < 0 {
		h.writeError(w, "Invalid user", "user_id must be a non-negative integer", http.StatusBadRequest)
		return
	}

	if err := h.svc.SwitchUser(r.Context(), *req.UserID); err != nil {
		log.Printf("Failed to switch user: %v", err)
		h.writeError(w, "Failed to switch user", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]int{
		"active_user":   h.svc.ActiveUser(),
		"current_count": h.svc.Count(service.ScopeCurrent),
	}, http.StatusOK)
}

// Dump writes the registry debug dump as plain text
func (h *NetworkHandler) Dump(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.svc.Dump(w); err != nil {
		log.Printf("Failed to write dump: %v", err)
	}
}

// Import loads networks from the request body
func (h *NetworkHandler) Import(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	replace := q.Get("replace") == "true"

	n, err := h.svc.Import(r.Context(), r.Body, q.Get("format"), replace)
	if err != nil {
		log.Printf("Failed to import networks: %v", err)
		h.writeError(w, "Failed to import networks", err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, map[string]any{
		"status":   "imported",
		"imported": n,
		"replace":  replace,
	}, http.StatusOK)
}

// Export writes the networks of a scope as a download
func (h *NetworkHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := strings.ToLower(q.Get("format"))
	if format == "" || format == "yml" {
		format = "yaml"
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
	case "yaml":
		w.Header().Set("Content-Type", "application/x-yaml")
	default:
		h.writeError(w, "Unsupported format", format, http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=networks.%s", format))

	if err := h.svc.Export(w, format, service.ParseScope(q.Get("scope"))); err != nil {
		log.Printf("Failed to export networks: %v", err)
		// Can't write error response as we already set headers
		return
	}
}

// Helper methods

func (h *NetworkHandler) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("id")
	if strings.TrimSpace(raw) == "" {
		raw = extractPathParam(r.URL.Path, "/api/networks/")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		h.writeError(w, "Invalid network ID", fmt.Sprintf("%q is not a network ID", raw), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *NetworkHandler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, service.ErrNotFound) {
		h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
		return
	}
	log.Printf("%s: %v", msg, err)
	h.writeError(w, msg, err.Error(), http.StatusInternalServerError)
}

func (h *NetworkHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *NetworkHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

func extractPathParam(path, prefix string) string {
	if strings.HasPrefix(path, prefix) {
		return strings.TrimPrefix(path, prefix)
	}
	return ""
}
