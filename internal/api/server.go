// Package api exposes the answer pipeline over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/piarosebelledelapaz/pro-botno/internal/models"
)

// Answerer is the single entry point the API exposes.
type Answerer interface {
	Answer(ctx context.Context, question string) (*models.FederatedAnswer, error)
}

// AnswerRequest is the incoming question payload.
type AnswerRequest struct {
	Question string `json:"question" binding:"required"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(engine Answerer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/answer", handleAnswer(engine))

	return r
}

// handleAnswer runs one question through the pipeline. Degraded branches
// are already folded into the answer payload; only total pipeline failure
// becomes an HTTP error.
func handleAnswer(engine Answerer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnswerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "question is required"})
			return
		}

		answer, err := engine.Answer(c.Request.Context(), req.Question)
		if err != nil {
			log.Error("answer pipeline failed", "err", err)
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, answer)
	}
}
