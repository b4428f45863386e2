package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/wealthflow/backend/internal/domain/error"
	"github.com/wealthflow/backend/internal/integration/entrypoint/dto"
)

// respondUnauthenticated writes the standard missing-identity response.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
