// Package handler maps HTTP requests onto store operations and shapes the
// responses. Typed store failures become status codes here: InvalidInput
// is 400, a missing or unusable session is 401, anything else is 500.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jeffandersoncharriot/ByteBoard/internal/auth"
	"github.com/jeffandersoncharriot/ByteBoard/internal/errs"
	"github.com/jeffandersoncharriot/ByteBoard/internal/logger"
)

func sendError(c *gin.Context, err error) {
	logger.Error(err.Error(), map[string]any{"path": c.Request.URL.Path})

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"errorMessage": err.Error()})
	case errs.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"errorMessage": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"errorMessage": "Internal Error: " + err.Error()})
	}
}

func sendUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"errorMessage": "Unauthorized access"})
}

func parseID(hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.ObjectID{}, errs.InvalidInput("Invalid id (%s)", hex)
	}
	return id, nil
}

// bindPatch reads the request body as a raw patch map for the
// whitelist-merge update paths.
func bindPatch(c *gin.Context) (map[string]any, error) {
	patch := map[string]any{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		return nil, errs.InvalidInput("Request body is not valid JSON")
	}
	return patch, nil
}

func stringField(patch map[string]any, key string) string {
	v, _ := patch[key].(string)
	return v
}
