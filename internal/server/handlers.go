package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rashisahu/folio/internal/chatlog"
	"github.com/rashisahu/folio/internal/models"
)

func (s *Server) handleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: "message must not be empty"})
		return
	}

	requestID := c.GetString(ctxRequestID)

	answer, err := s.answerer.Answer(c.Request.Context(), req.Message)
	if err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).Error("answer failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: err.Error()})
		return
	}

	// The visitor still gets the answer when the log write fails.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), recordTimeout)
	defer cancel()
	if err := s.store.Record(ctx, chatlog.Entry{
		RequestID:   requestID,
		UserQuery:   req.Message,
		BotResponse: answer,
	}); err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).Warn("chat log write failed")
	}

	c.JSON(http.StatusOK, models.ChatResponse{Response: answer})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
		"version": s.version,
	})
}

func (s *Server) handleProfile(c *gin.Context) {
	c.JSON(http.StatusOK, s.profile)
}
