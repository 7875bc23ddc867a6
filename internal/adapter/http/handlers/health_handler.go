package handlers

import (
	"log"
	"net/http"

	response "quote_calculator/internal/adapter/http/dto/response"
	"quote_calculator/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	guard   usecase.IDiskGuard
	storage string
}

func NewHealthHandler(guard usecase.IDiskGuard, storage string) *HealthHandler {
	return &HealthHandler{guard: guard, storage: storage}
}

// Health reports "degraded" while writes are being refused for lack of
// disk space. The service itself stays up.
func (h *HealthHandler) Health(c *gin.Context) {
	res := response.HealthResponse{Status: "ok", Storage: h.storage}
	st, err := h.guard.Status(c.Request.Context())
	if err != nil {
		log.Printf("[health][handler] disk status unavailable err=%v", err)
		c.JSON(http.StatusOK, res)
		return
	}
	res.Disk = response.FromDiskStatus(st)
	if !st.Healthy {
		res.Status = "degraded"
	}
	c.JSON(http.StatusOK, res)
}
