package handler

import (
	"github.com/gin-gonic/gin"

	"enrolpay/internal/service"
)

// JobHandler exposes the scheduled pipeline as on-demand triggers, used by
// external schedulers and operators.
type JobHandler struct {
	engine     *service.StatusEngine
	dispatcher *service.Dispatcher
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(engine *service.StatusEngine, dispatcher *service.Dispatcher) *JobHandler {
	return &JobHandler{engine: engine, dispatcher: dispatcher}
}

// RunStatusUpdate handles POST /api/v1/jobs/status-update
func (h *JobHandler) RunStatusUpdate(c *gin.Context) {
	results, err := h.engine.RunStatusUpdate(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, results)
}

// RunNotificationDispatch handles POST /api/v1/jobs/notification-dispatch
func (h *JobHandler) RunNotificationDispatch(c *gin.Context) {
	result, err := h.dispatcher.RunNotificationDispatch(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}
