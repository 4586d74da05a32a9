package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleHealthcheck godoc
// @Summary      Check service liveness
// @Tags         healthcheck
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthcheck [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
