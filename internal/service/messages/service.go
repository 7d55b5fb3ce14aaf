package messages

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/doggr/backend/internal/app"
	"github.com/doggr/backend/internal/auth"
	"github.com/doggr/backend/internal/db"
	"github.com/doggr/backend/internal/httperr"
	"github.com/doggr/backend/internal/moderation"
	"github.com/doggr/backend/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service implements direct messaging: listing with cursor pagination,
// moderated sends, and the admin-gated bulk removals.
type Service struct {
	appCtx      *app.AppContext
	messageRepo *repository.MessageRepository
	userRepo    *repository.UserRepository
	filter      *moderation.Filter
}

// NewService creates the messages service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		messageRepo: repository.NewMessageRepository(appCtx.DB),
		userRepo:    repository.NewUserRepository(appCtx.DB),
		filter:      moderation.NewFilter(appCtx.Config.Moderation.BannedWords),
	}
}

type SendRequest struct {
	RecipientID uint   `json:"recipient_id"`
	Message     string `json:"message"`
}

type RemovePairRequest struct {
	SenderID      uint   `json:"sender_id"`
	RecipientID   uint   `json:"recipient_id"`
	AdminPassword string `json:"admin_password"`
}

type RemoveBySenderRequest struct {
	SenderID      uint   `json:"sender_id"`
	AdminPassword string `json:"admin_password"`
}

type ListResponse struct {
	Messages            []db.Message `json:"messages"`
	NextPaginationToken *string      `json:"next_pagination_token,omitempty"`
}

type RemovedResponse struct {
	Removed int64 `json:"removed"`
}

type RejectedResponse struct {
	Error string `json:"error"`
}

// ListMine returns the caller's sent messages, newest first.
func (s *Service) ListMine(c echo.Context) error {
	ident, _ := auth.IdentityFrom(c)
	return s.respondList(c, func(token *string, limit int) ([]db.Message, *string, error) {
		return s.messageRepo.ListBySender(c.Request().Context(), ident.UserID, token, limit)
	})
}

// ListBySender returns messages sent by the user in the path.
func (s *Service) ListBySender(c echo.Context) error {
	senderID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	return s.respondList(c, func(token *string, limit int) ([]db.Message, *string, error) {
		return s.messageRepo.ListBySender(c.Request().Context(), senderID, token, limit)
	})
}

// ListByRecipient returns messages received by the user in the path.
func (s *Service) ListByRecipient(c echo.Context) error {
	recipientID, err := parseIDParam(c)
	if err != nil {
		return err
	}
	return s.respondList(c, func(token *string, limit int) ([]db.Message, *string, error) {
		return s.messageRepo.ListByRecipient(c.Request().Context(), recipientID, token, limit)
	})
}

func (s *Service) respondList(c echo.Context, fetch func(*string, int) ([]db.Message, *string, error)) error {
	var token *string
	if raw := c.QueryParam("pagination_token"); raw != "" {
		token = &raw
	}

	limit := defaultPageSize
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return httperr.BadRequest("limit must be a positive integer")
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		limit = n
	}

	msgs, next, err := fetch(token, limit)
	if err != nil {
		s.appCtx.Logger.Error("message list failed", "err", err)
		return httperr.Map(err)
	}
	return c.JSON(http.StatusOK, ListResponse{Messages: msgs, NextPaginationToken: next})
}

// Send creates a message from the authenticated caller.
//
// Behavior:
//   - The text runs through the banned-word filter first. On a hit the
//     sender's badwords counter is incremented and persisted, the message
//     is never written, and the caller gets a rejection body.
//   - Clean text is persisted as one message row.
func (s *Service) Send(c echo.Context) error {
	ident, _ := auth.IdentityFrom(c)

	var req SendRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("failed to parse request body")
	}
	if req.RecipientID == 0 || req.Message == "" {
		return httperr.BadRequest("recipient_id and message are required")
	}

	ctx := c.Request().Context()

	if word, hit := s.filter.Check(req.Message); hit {
		if err := s.userRepo.IncrementBadwords(ctx, ident.UserID); err != nil {
			s.appCtx.Logger.Error("badwords increment failed", "user", ident.UserID, "err", err)
			return httperr.Map(err)
		}
		s.appCtx.Logger.Info("message rejected", "user", ident.UserID, "word", word)
		return c.JSON(http.StatusUnprocessableEntity, RejectedResponse{
			Error: "message rejected by moderation",
		})
	}

	msg := db.Message{
		SenderID:    ident.UserID,
		RecipientID: req.RecipientID,
		Message:     req.Message,
	}
	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		s.appCtx.Logger.Error("message create failed", "sender", ident.UserID, "err", err)
		return httperr.Map(err)
	}

	return c.JSON(http.StatusOK, msg)
}

// RemovePair soft-removes every active message between sender and recipient.
// Admin-gated.
func (s *Service) RemovePair(c echo.Context) error {
	var req RemovePairRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("failed to parse request body")
	}
	if err := s.checkAdmin(req.AdminPassword); err != nil {
		return err
	}
	if req.SenderID == 0 || req.RecipientID == 0 {
		return httperr.BadRequest("sender_id and recipient_id are required")
	}

	removed, err := s.messageRepo.SoftRemovePair(c.Request().Context(), req.SenderID, req.RecipientID)
	if err != nil {
		return httperr.Map(err)
	}
	return c.JSON(http.StatusOK, RemovedResponse{Removed: removed})
}

// RemoveBySender soft-removes every active message the sender has sent.
// Admin-gated.
func (s *Service) RemoveBySender(c echo.Context) error {
	var req RemoveBySenderRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("failed to parse request body")
	}
	if err := s.checkAdmin(req.AdminPassword); err != nil {
		return err
	}
	if req.SenderID == 0 {
		return httperr.BadRequest("sender_id is required")
	}

	removed, err := s.messageRepo.SoftRemoveBySender(c.Request().Context(), req.SenderID)
	if err != nil {
		return httperr.Map(err)
	}
	return c.JSON(http.StatusOK, RemovedResponse{Removed: removed})
}

// checkAdmin compares the supplied admin password by exact string equality.
// An unset server-side password rejects everything. Mismatches surface as
// 500, matching the behavior clients already depend on.
func (s *Service) checkAdmin(supplied string) error {
	configured := s.appCtx.Config.Auth.AdminPassword
	if configured == "" || supplied != configured {
		return echo.NewHTTPError(http.StatusInternalServerError, "invalid admin password")
	}
	return nil
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, httperr.BadRequest("id must be a positive integer")
	}
	return uint(id), nil
}
