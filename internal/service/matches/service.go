package matches

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/doggr/backend/internal/app"
	"github.com/doggr/backend/internal/auth"
	"github.com/doggr/backend/internal/httperr"
	"github.com/doggr/backend/internal/repository"
)

// Service implements the swipe endpoints on top of the match repository and
// the Redis match-count cache.
type Service struct {
	appCtx      *app.AppContext
	matchRepo   *repository.MatchRepository
	profileRepo *repository.ProfileRepository
}

// NewService creates the matches service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		matchRepo:   repository.NewMatchRepository(appCtx.DB),
		profileRepo: repository.NewProfileRepository(appCtx.DB),
	}
}

type CreateMatchRequest struct {
	MatcherID uint `json:"matcher_id"`
	MatcheeID uint `json:"matchee_id"`
}

type RemoveMatchRequest struct {
	MatcherID uint `json:"matcher_id"`
	MatcheeID uint `json:"matchee_id"`
}

type RemoveMatchesRequest struct {
	MatcherID uint `json:"matcher_id"`
}

type RemovedResponse struct {
	Removed int64 `json:"removed"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// ListMatches returns the active matches touching any of the caller's
// profiles, with both sides expanded.
func (s *Service) ListMatches(c echo.Context) error {
	ident, _ := auth.IdentityFrom(c)
	ctx := c.Request().Context()

	profiles, err := s.profileRepo.ListByUser(ctx, ident.UserID)
	if err != nil {
		s.appCtx.Logger.Error("profile lookup failed", "user", ident.UserID, "err", err)
		return httperr.Map(err)
	}

	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}

	matches, err := s.matchRepo.ListForProfiles(ctx, ids)
	if err != nil {
		s.appCtx.Logger.Error("match list failed", "user", ident.UserID, "err", err)
		return httperr.Map(err)
	}
	return c.JSON(http.StatusOK, matches)
}

// CountMatches returns how many active matches point at the caller's
// profiles as matchee.
//
// Cache-first strategy:
//  1. Attempts to read each profile's counter from Redis.
//  2. On a miss, falls back to the DB and writes the counter back with TTL.
func (s *Service) CountMatches(c echo.Context) error {
	ident, _ := auth.IdentityFrom(c)
	ctx := c.Request().Context()

	profiles, err := s.profileRepo.ListByUser(ctx, ident.UserID)
	if err != nil {
		return httperr.Map(err)
	}

	var total int64
	for _, p := range profiles {
		if n, ok, err := s.appCtx.RedisCache.GetMatchCount(ctx, p.ID); err == nil && ok {
			total += n
			continue
		}
		n, err := s.matchRepo.CountForMatchee(ctx, p.ID)
		if err != nil {
			s.appCtx.Logger.Error("match count failed", "profile", p.ID, "err", err)
			return httperr.Map(err)
		}
		_ = s.appCtx.RedisCache.UpdateMatchCount(ctx, p.ID, n)
		total += n
	}

	return c.JSON(http.StatusOK, CountResponse{Count: total})
}

// CreateMatch records a swipe edge from matcher to matchee.
func (s *Service) CreateMatch(c echo.Context) error {
	var req CreateMatchRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("failed to parse request body")
	}
	if req.MatcherID == 0 || req.MatcheeID == 0 {
		return httperr.BadRequest("matcher_id and matchee_id are required")
	}
	if req.MatcherID == req.MatcheeID {
		return httperr.BadRequest("a profile cannot match itself")
	}

	ctx := c.Request().Context()
	match, err := s.matchRepo.Create(ctx, req.MatcherID, req.MatcheeID)
	if err != nil {
		s.appCtx.Logger.Error("match create failed", "matcher", req.MatcherID, "matchee", req.MatcheeID, "err", err)
		return httperr.Map(err)
	}

	// best effort; TTL bounds staleness if this fails
	_ = s.appCtx.RedisCache.InvalidateMatchCount(ctx, req.MatcheeID)

	return c.JSON(http.StatusOK, match)
}

// RemoveMatch soft-removes the active edge for the given pair. A pair with no
// active edge is 404, which also makes repeating the call harmless.
func (s *Service) RemoveMatch(c echo.Context) error {
	var req RemoveMatchRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("failed to parse request body")
	}
	if req.MatcherID == 0 || req.MatcheeID == 0 {
		return httperr.BadRequest("matcher_id and matchee_id are required")
	}

	ctx := c.Request().Context()
	if err := s.matchRepo.SoftRemovePair(ctx, req.MatcherID, req.MatcheeID); err != nil {
		return httperr.Map(err)
	}

	_ = s.appCtx.RedisCache.InvalidateMatchCount(ctx, req.MatcheeID)

	return c.JSON(http.StatusOK, RemovedResponse{Removed: 1})
}

// RemoveMatches soft-removes every active edge created by the matcher.
func (s *Service) RemoveMatches(c echo.Context) error {
	var req RemoveMatchesRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("failed to parse request body")
	}
	if req.MatcherID == 0 {
		return httperr.BadRequest("matcher_id is required")
	}

	removed, err := s.matchRepo.SoftRemoveByMatcher(c.Request().Context(), req.MatcherID)
	if err != nil {
		return httperr.Map(err)
	}
	return c.JSON(http.StatusOK, RemovedResponse{Removed: removed})
}

// ListByMatcher returns the matchee profiles for every active edge the given
// matcher created.
func (s *Service) ListByMatcher(c echo.Context) error {
	matcherID, err := parseIDParam(c, "matcherId")
	if err != nil {
		return err
	}

	profiles, err := s.matchRepo.ListByMatcher(c.Request().Context(), matcherID)
	if err != nil {
		return httperr.Map(err)
	}
	return c.JSON(http.StatusOK, profiles)
}

// ListByMatchee returns the matcher profiles for every active edge pointing
// at the given matchee.
func (s *Service) ListByMatchee(c echo.Context) error {
	matcheeID, err := parseIDParam(c, "matcheeId")
	if err != nil {
		return err
	}

	profiles, err := s.matchRepo.ListByMatchee(c.Request().Context(), matcheeID)
	if err != nil {
		return httperr.Map(err)
	}
	return c.JSON(http.StatusOK, profiles)
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, httperr.BadRequest(name + " must be a positive integer")
	}
	return uint(id), nil
}
