package profiles

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/doggr/backend/internal/app"
	"github.com/doggr/backend/internal/auth"
	"github.com/doggr/backend/internal/db"
	"github.com/doggr/backend/internal/httperr"
	"github.com/doggr/backend/internal/repository"
)

// Service implements pet-profile CRUD. Pictures land in object storage under
// a generated key; the profile row keeps only that key.
type Service struct {
	appCtx      *app.AppContext
	profileRepo *repository.ProfileRepository
}

// NewService creates the profiles service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		profileRepo: repository.NewProfileRepository(appCtx.DB),
	}
}

type RenameRequest struct {
	Name string `json:"name"`
}

// ListProfiles returns all pet profiles.
func (s *Service) ListProfiles(c echo.Context) error {
	profiles, err := s.profileRepo.List(c.Request().Context())
	if err != nil {
		s.appCtx.Logger.Error("profile list failed", "err", err)
		return httperr.Map(err)
	}
	return c.JSON(http.StatusOK, profiles)
}

// CreateProfile creates a pet profile for the authenticated caller.
//
// Behavior:
//   - Multipart form: "name" field plus a "file" picture.
//   - The picture is uploaded to object storage under a fresh UUID key
//     before the row is written; an upload failure fails the request
//     cleanly and writes nothing.
func (s *Service) CreateProfile(c echo.Context) error {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		return httperr.Unauthorized("not authenticated")
	}

	name := c.FormValue("name")
	if name == "" {
		return httperr.BadRequest("name is required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return httperr.BadRequest("picture file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		s.appCtx.Logger.Error("failed to open uploaded file", "err", err)
		return httperr.Map(err)
	}
	defer src.Close()

	key := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.appCtx.Storage.Upload(c.Request().Context(), key, contentType, src); err != nil {
		s.appCtx.Logger.Error("picture upload failed", "key", key, "err", err)
		return echo.NewHTTPError(http.StatusBadGateway, "failed to store picture")
	}

	profile := db.Profile{
		Name:    name,
		Picture: key,
		UserID:  ident.UserID,
	}
	if err := s.profileRepo.Create(c.Request().Context(), &profile); err != nil {
		s.appCtx.Logger.Error("profile create failed", "err", err)
		return httperr.Map(err)
	}

	s.appCtx.Logger.Info("profile created", "id", profile.ID, "user", ident.UserID)
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile renames the identified profile.
func (s *Service) UpdateProfile(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req RenameRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("failed to parse request body")
	}
	if req.Name == "" {
		return httperr.BadRequest("name is required")
	}

	profile, err := s.profileRepo.Rename(c.Request().Context(), id, req.Name)
	if err != nil {
		return httperr.Map(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// DeleteProfile hard-removes the identified profile. Its match edges go with
// it via the foreign-key cascade.
func (s *Service) DeleteProfile(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := s.profileRepo.Delete(c.Request().Context(), id); err != nil {
		return httperr.Map(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, httperr.BadRequest("id must be a positive integer")
	}
	return uint(id), nil
}
