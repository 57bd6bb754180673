package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alkime/quill/internal/apperr"
	"github.com/alkime/quill/internal/comments"
	"github.com/gin-gonic/gin"
)

type generateRequest struct {
	Title string `json:"title"`
	Count *int   `json:"count"`
}

type generateResponse struct {
	Content  string `json:"content"`
	Comments string `json:"comments"`
}

type commentRequest struct {
	Count *int `json:"count"`
}

type commentResponse struct {
	Post     string             `json:"post"`
	Comments []comments.Comment `json:"comments"`
}

// handleGenerate drafts a post for the title and comments on it.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	body, generated, err := s.service.Draft(c.Request.Context(), req.Title, countOrDefault(req.Count))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, generateResponse{
		Content:  body,
		Comments: comments.Format(generated),
	})
}

func (s *Server) handleListPosts(c *gin.Context) {
	names, err := s.service.Store().List()
	if err != nil {
		s.fail(c, err)
		return
	}

	pending, err := s.service.Pending()
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": names, "pending": pending})
}

// handleCommentOnPost appends comments to an existing post.
func (s *Server) handleCommentOnPost(c *gin.Context) {
	var req commentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	name := c.Param("name")

	generated, err := s.service.CommentOnPost(c.Request.Context(), name, countOrDefault(req.Count))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, commentResponse{Post: name, Comments: generated})
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "path", c.Request.URL.Path, "error", err)
	} else {
		s.logger.Warn("Request rejected", "path", c.Request.URL.Path, "error", err)
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrServiceUnavailable), errors.Is(err, apperr.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, apperr.ErrEmptyContent),
		errors.Is(err, apperr.ErrMalformedPost),
		errors.Is(err, apperr.ErrInsufficientPersonas):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func countOrDefault(count *int) int {
	if count == nil {
		return comments.DefaultCount
	}

	return *count
}
