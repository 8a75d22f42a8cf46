package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xavierca1/cart-recovery/internal/infra/http/middleware"
	"github.com/xavierca1/cart-recovery/internal/usecase"
)

type SyncContactsExecutor interface {
	Execute(ctx context.Context, checkAuth bool) (*usecase.SyncContactsOutput, error)
}

type SyncHandler struct {
	uc SyncContactsExecutor
}

func NewSyncHandler(uc SyncContactsExecutor) *SyncHandler {
	return &SyncHandler{uc: uc}
}

type syncResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Error   string `json:"error,omitempty"`
}

// Handle dispara a sincronização de contatos. O scheduler externo chama este
// endpoint periodicamente; ?check_auth=false pula a validação de credenciais.
func (h *SyncHandler) Handle(w http.ResponseWriter, r *http.Request) {
	checkAuth := r.URL.Query().Get("check_auth") != "false"

	output, err := h.uc.Execute(r.Context(), checkAuth)
	if err != nil {
		writeJSON(w, errorStatus(err), syncResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	middleware.RecordContactsSynced(output.Count)
	writeJSON(w, http.StatusOK, syncResponse{
		Success: true,
		Count:   output.Count,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// errorStatus: falha na origem externa vira 502, falha de infra vira 500
func errorStatus(err error) int {
	if usecase.IsDomainError(err) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
