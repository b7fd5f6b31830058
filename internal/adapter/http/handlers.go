package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/openbobs/gateway/internal/domain"
	"github.com/openbobs/gateway/internal/domain/agentlib"
	"github.com/openbobs/gateway/internal/domain/chat"
	"github.com/openbobs/gateway/internal/metrics"
	"github.com/openbobs/gateway/internal/port/llm"
	"github.com/openbobs/gateway/internal/service"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	LLM       llm.Client
	Search    *service.SearchService
	Tools     *service.ToolService
	Library   *service.LibraryService
	Metrics   *metrics.Registry
	StartedAt time.Time
	Host      string
	Port      int
	OllamaURL string
}

// Health reports whether the inference backend is reachable and which
// models it serves. Polled opportunistically by the UI, so a backend
// failure is a soft envelope, never a 5xx.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.Metrics.Increment(metrics.HealthChecks)

	models, err := h.LLM.ListModels(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":     false,
			"models": []string{},
			"error":  err.Error(),
		})
		return
	}
	if models == nil {
		models = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "models": models})
}

// Runtime reports the gateway's own listen address and backend URL.
func (h *Handlers) Runtime(w http.ResponseWriter, _ *http.Request) {
	h.Metrics.Increment(metrics.RuntimeChecks)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"host":      h.Host,
		"port":      h.Port,
		"ollamaUrl": h.OllamaURL,
	})
}

// RuntimeMetrics returns the counter snapshot. Reading metrics does not
// itself count as a runtime check.
func (h *Handlers) RuntimeMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":            true,
		"metrics":       h.Metrics.Snapshot(),
		"uptimeSeconds": int64(time.Since(h.StartedAt).Seconds()),
	})
}

// Chat forwards a conversation to the inference backend and returns the
// assistant reply. A down backend is an expected condition and comes back
// as a soft failure, not a 500.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[chat.Request](w, r)
	if !ok {
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages is required")
		return
	}

	h.Metrics.Increment(metrics.ChatRequests)

	reply, err := h.LLM.Chat(r.Context(), req.ResolveModel(), req.Messages)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			writeError(w, http.StatusOK, err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "reply": reply})
}

// WebSearch runs a web search. Provider failures are soft: the envelope
// carries ok:false and an empty results list.
func (h *Handlers) WebSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Query string `json:"query"`
	}](w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	h.Metrics.Increment(metrics.SearchRequests)

	results, err := h.Search.Search(r.Context(), req.Query)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      false,
			"error":   err.Error(),
			"results": []any{},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "results": results})
}

// ListTools reports the tool catalog with live installed-state.
func (h *Handlers) ListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"tools": h.Tools.Status(r.Context()),
	})
}

// RunTool executes the probe command for an allow-listed tool. A policy
// rejection never spawns a process and never counts as a tool run.
func (h *Handlers) RunTool(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Tool string `json:"tool"`
	}](w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Tool) == "" {
		writeError(w, http.StatusBadRequest, "tool is required")
		return
	}

	result, err := h.Tools.Run(r.Context(), req.Tool)
	if err != nil {
		if errors.Is(err, domain.ErrRejected) {
			msg := strings.TrimPrefix(err.Error(), domain.ErrRejected.Error()+": ")
			writeError(w, http.StatusOK, msg)
			return
		}
		writeInternalError(w, err)
		return
	}

	h.Metrics.Increment(metrics.KaliToolRuns)
	writeJSON(w, http.StatusOK, result)
}

// ListAgentLibrary enumerates the stored agent definitions.
func (h *Handlers) ListAgentLibrary(w http.ResponseWriter, r *http.Request) {
	h.Metrics.Increment(metrics.LibraryReads)

	items, err := h.Library.List(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if items == nil {
		items = []agentlib.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "items": items})
}

// DownloadAgent serves the raw stored JSON for one agent file.
func (h *Handlers) DownloadAgent(w http.ResponseWriter, r *http.Request) {
	data, err := h.Library.Get(r.Context(), urlParam(r, "file"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "agent not found")
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusBadRequest, "invalid file name")
		default:
			writeInternalError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// SaveAgent persists an edited agent definition.
func (h *Handlers) SaveAgent(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		Agent agentlib.Definition `json:"agent"`
	}](w, r)
	if !ok {
		return
	}
	if req.Agent == nil {
		writeError(w, http.StatusBadRequest, "agent must be a JSON object")
		return
	}

	h.Metrics.Increment(metrics.AgentSaves)

	entry, err := h.Library.Save(r.Context(), req.Agent)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"file":        entry.File,
		"name":        entry.Name,
		"downloadUrl": entry.DownloadURL,
	})
}

// ImportAgent fetches a remote agent definition and stores it with the
// URL as provenance. An unreachable host or a non-JSON document is a
// soft failure; nothing is written in either case.
func (h *Handlers) ImportAgent(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[struct {
		URL string `json:"url"`
	}](w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	h.Metrics.Increment(metrics.AgentImports)

	entry, err := h.Library.Import(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) || errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusOK, err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"file":        entry.File,
		"name":        entry.Name,
		"downloadUrl": entry.DownloadURL,
	})
}
