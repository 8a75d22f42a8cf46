package handlers

import (
	"context"
	"net/http"

	"github.com/xavierca1/cart-recovery/internal/infra/http/middleware"
	"github.com/xavierca1/cart-recovery/internal/usecase"
)

type UpdateTasksExecutor interface {
	Execute(ctx context.Context) (*usecase.UpdateTasksOutput, error)
}

type ProcessTasksExecutor interface {
	Execute(ctx context.Context) (*usecase.ProcessTasksOutput, error)
}

type TaskHandler struct {
	updateUC  UpdateTasksExecutor
	processUC ProcessTasksExecutor
}

func NewTaskHandler(updateUC UpdateTasksExecutor, processUC ProcessTasksExecutor) *TaskHandler {
	return &TaskHandler{
		updateUC:  updateUC,
		processUC: processUC,
	}
}

type updateTasksResponse struct {
	Success      bool     `json:"success"`
	CurrentTasks []string `json:"current_tasks,omitempty"`
	Removed      int      `json:"removed,omitempty"`
	Error        string   `json:"error,omitempty"`
}

type processTasksResponse struct {
	Success bool                 `json:"success"`
	Tasks   []usecase.TaskResult `json:"tasks,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// HandleUpdate reconcilia as tasks com o conjunto atual de carrinhos
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	output, err := h.updateUC.Execute(r.Context())
	if err != nil {
		writeJSON(w, errorStatus(err), updateTasksResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	middleware.RecordTasksRemoved(output.Removed)
	middleware.SetTasksTracked(len(output.CurrentTasks))

	writeJSON(w, http.StatusOK, updateTasksResponse{
		Success:      true,
		CurrentTasks: output.CurrentTasks,
		Removed:      output.Removed,
	})
}

// HandleProcess roda uma passada da máquina de sequência
func (h *TaskHandler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	output, err := h.processUC.Execute(r.Context())
	if err != nil {
		writeJSON(w, errorStatus(err), processTasksResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	for _, tr := range output.Tasks {
		middleware.RecordFollowUpResult(string(tr.Status))
	}

	writeJSON(w, http.StatusOK, processTasksResponse{
		Success: true,
		Tasks:   output.Tasks,
	})
}
