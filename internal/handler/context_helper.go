package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-report-api/internal/middleware"
	"github.com/noah-isme/student-report-api/internal/models"
	appErrors "github.com/noah-isme/student-report-api/pkg/errors"
)

func actorFromContext(c *gin.Context) (models.Actor, error) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return models.Actor{}, appErrors.ErrUnauthorized
	}
	return claims.Actor(), nil
}
