package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"bizdesk/internal/app"

	"github.com/google/uuid"
)

// ── Pending action store ──────────────────────────────────────────────────────

// pendingKind identifies what type of action awaits confirmation.
type pendingKind string

const (
	pendingKindCreateEmployee   pendingKind = "create_employee"
	pendingKindSetInvoiceStatus pendingKind = "set_invoice_status"
)

// pendingAction is stored server-side until the user confirms or cancels.
type pendingAction struct {
	Kind          pendingKind
	Draft         app.EmployeeDraftInput // populated for pendingKindCreateEmployee
	InvoiceNumber string                 // populated for pendingKindSetInvoiceStatus
	NewStatus     string                 // populated for pendingKindSetInvoiceStatus
	BusinessCode  string
	CreatedAt     time.Time
}

const pendingTTL = 15 * time.Minute

// pendingStore is a thread-safe in-memory store with TTL expiry.
type pendingStore struct {
	mu      sync.Mutex
	actions map[string]pendingAction
}

func newPendingStore() *pendingStore {
	return &pendingStore{actions: make(map[string]pendingAction)}
}

func (s *pendingStore) put(token string, a pendingAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[token] = a
}

func (s *pendingStore) get(token string) (pendingAction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.actions[token]
	if !ok {
		return pendingAction{}, false
	}
	if time.Since(a.CreatedAt) > pendingTTL {
		delete(s.actions, token)
		return pendingAction{}, false
	}
	return a, true
}

func (s *pendingStore) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.actions, token)
}

// startPurge starts a background goroutine that evicts expired entries every 5 minutes.
func (s *pendingStore) startPurge(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.mu.Lock()
				for token, action := range s.actions {
					if time.Since(action.CreatedAt) > pendingTTL {
						delete(s.actions, token)
					}
				}
				s.mu.Unlock()
			}
		}
	}()
}

// ── SSE helpers ───────────────────────────────────────────────────────────────

// sendSSE writes one SSE event and flushes. data is JSON-marshalled.
func sendSSE(w http.ResponseWriter, f http.Flusher, event string, data any) {
	b, _ := json.Marshal(data)
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(b))
	f.Flush()
}

// ── Request / response types ──────────────────────────────────────────────────

type assistantQueryRequest struct {
	Text         string `json:"text"`
	BusinessCode string `json:"business_code"`
}

type assistantConfirmRequest struct {
	Token  string `json:"token"`
	Action string `json:"action"` // "confirm" or "cancel"
}

// ── assistantQuery — POST /assistant ──────────────────────────────────────────

// assistantQuery accepts a free-text query and streams the result via SSE.
//
// SSE event types:
//
//	status          {"status":"thinking"}
//	message         {"task_type":"...","text":"..."}
//	invoice         {"invoice":{...}}
//	employee_draft  {"token":"uuid","draft":{...}}   (awaiting confirm)
//	invoice_status  {"token":"uuid","invoice_number":"...","new_status":"...","text":"..."}
//	error           {"message":"...","code":"..."}
//	done            {}
func (h *Handler) assistantQuery(w http.ResponseWriter, r *http.Request) {
	var req assistantQueryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Text == "" || req.BusinessCode == "" {
		writeError(w, r, "text and business_code are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if !h.requireBusinessAccess(w, r, req.BusinessCode) {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, "streaming not supported", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering if present

	sendSSE(w, flusher, "status", map[string]any{"status": "thinking"})

	result, err := h.svc.AssistantQuery(r.Context(), req.Text, req.BusinessCode)
	if err != nil {
		sendSSE(w, flusher, "error", map[string]any{"message": err.Error(), "code": "AI_ERROR"})
		sendSSE(w, flusher, "done", map[string]any{})
		return
	}

	switch result.Kind {

	case app.AssistantKindMessage:
		sendSSE(w, flusher, "message", map[string]any{
			"task_type": result.TaskType,
			"text":      result.Message,
		})

	case app.AssistantKindInvoice:
		sendSSE(w, flusher, "invoice", map[string]any{"invoice": result.Invoice})

	case app.AssistantKindEmployeeDraft:
		token := uuid.NewString()
		h.pending.put(token, pendingAction{
			Kind: pendingKindCreateEmployee,
			Draft: app.EmployeeDraftInput{
				Name:           result.Draft.Name,
				Email:          result.Draft.Email,
				JobTitle:       result.Draft.JobTitle,
				StartDate:      result.Draft.StartDate,
				EmploymentType: result.Draft.EmploymentType,
			},
			BusinessCode: req.BusinessCode,
			CreatedAt:    time.Now(),
		})
		sendSSE(w, flusher, "employee_draft", map[string]any{
			"token": token,
			"draft": result.Draft,
		})

	case app.AssistantKindInvoiceStatus:
		token := uuid.NewString()
		h.pending.put(token, pendingAction{
			Kind:          pendingKindSetInvoiceStatus,
			InvoiceNumber: result.Intent.InvoiceNumber,
			NewStatus:     result.Intent.NewStatus,
			BusinessCode:  req.BusinessCode,
			CreatedAt:     time.Now(),
		})
		sendSSE(w, flusher, "invoice_status", map[string]any{
			"token":          token,
			"invoice_number": result.Intent.InvoiceNumber,
			"new_status":     result.Intent.NewStatus,
			"text":           result.Message,
		})
	}

	sendSSE(w, flusher, "done", map[string]any{})
}

// ── assistantConfirm — POST /assistant/confirm ────────────────────────────────

// assistantConfirm executes or cancels a pending action identified by its token.
func (h *Handler) assistantConfirm(w http.ResponseWriter, r *http.Request) {
	var req assistantConfirmRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		writeError(w, r, "token is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.Action != "confirm" && req.Action != "cancel" {
		writeError(w, r, "action must be 'confirm' or 'cancel'", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	action, ok := h.pending.get(req.Token)
	if !ok {
		writeError(w, r, "token not found or expired", "NOT_FOUND", http.StatusNotFound)
		return
	}

	// Verify the confirming user still belongs to the business the action was created for.
	if !h.requireBusinessAccess(w, r, action.BusinessCode) {
		return
	}
	h.pending.delete(req.Token)

	if req.Action == "cancel" {
		writeJSON(w, map[string]any{"ok": true, "message": "Cancelled."})
		return
	}

	switch action.Kind {
	case pendingKindCreateEmployee:
		result, err := h.svc.ApplyEmployeeDraft(r.Context(), action.BusinessCode, action.Draft)
		if err != nil {
			writeError(w, r, "employee creation failed: "+err.Error(), "APPLY_ERROR", http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "message": "Employee added.", "employee": result.Employee})

	case pendingKindSetInvoiceStatus:
		result, err := h.svc.SetInvoiceStatus(r.Context(), action.BusinessCode, action.InvoiceNumber, action.NewStatus)
		if err != nil {
			writeError(w, r, "status update failed: "+err.Error(), "APPLY_ERROR", http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, map[string]any{"ok": true, "message": "Invoice updated.", "invoice": result.Invoice})
	}
}
