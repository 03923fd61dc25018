package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/employee-dashboard/internal/config"
	"github.com/iliyamo/employee-dashboard/internal/middleware"
	"github.com/iliyamo/employee-dashboard/internal/model"
	"github.com/iliyamo/employee-dashboard/internal/repository"
)

// MessageHandler serves the message board. Ownership on edit and
// delete is checked against the authenticated user id, never against
// the client-supplied author name. Mutations invalidate the cached
// listing so readers see changes before the cache TTL elapses.
type MessageHandler struct {
	Messages repository.MessageStore
	CacheCfg config.CacheConfig
	Redis    *redis.Client
}

func NewMessageHandler(messages repository.MessageStore, cacheCfg config.CacheConfig, rdb *redis.Client) *MessageHandler {
	return &MessageHandler{Messages: messages, CacheCfg: cacheCfg, Redis: rdb}
}

type messageReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// messageResp carries the author's user id so clients can decide
// which posts are editable by comparing it with their own id. The
// listing stays viewer-independent and therefore cacheable.
type messageResp struct {
	ID        uint64    `json:"id"`
	AuthorID  uint64    `json:"author_id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toMessageResp(m model.Message) messageResp {
	return messageResp{
		ID: m.ID, AuthorID: m.AuthorID, Author: m.Author, Title: m.Title,
		Content: m.Content, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func (h *MessageHandler) invalidateList() {
	middleware.InvalidateCache(h.CacheCfg, h.Redis, http.MethodGet, "/api/messages")
}

// List returns every message, newest first.
func (h *MessageHandler) List(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Messages.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	out := make([]messageResp, 0, len(items))
	for _, m := range items {
		out = append(out, toMessageResp(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Create posts a new message authored by the current user.
func (h *MessageHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	var req messageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "title and content are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := &model.Message{AuthorID: userID, Author: getUsername(c), Title: title, Content: content}
	if err := h.Messages.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "create failed"})
	}
	h.invalidateList()
	return c.JSON(http.StatusOK, toMessageResp(*m))
}

// Update edits a message the current user authored.
func (h *MessageHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	var req messageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "title and content are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Messages.Update(ctx, id, userID, title, content)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "message not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "not the author of this message"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "update failed"})
	}
	h.invalidateList()
	return c.JSON(http.StatusOK, toMessageResp(m))
}

// Delete removes a message the current user authored.
func (h *MessageHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Messages.Delete(ctx, id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "message not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "not the author of this message"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "delete failed"})
	}
	h.invalidateList()
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "message deleted"})
}
