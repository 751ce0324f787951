package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"opencycle/internal/delivery/http/middleware"
	"opencycle/internal/delivery/http/response"
	"opencycle/internal/domain/entity"
	"opencycle/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// ProfileHandler holds dependencies for profile and dashboard handlers.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// Get handles loading the caller's profile, creating it on first access
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	user, err := h.profileUC.GetOrCreate(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "")
}

// Update handles saving the caller's profile. The request is multipart form
// data so a new avatar can ride along with the fields.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := usecase.UpdateProfileInput{
		Name:      c.FormValue("name"),
		Bio:       c.FormValue("bio"),
		Location:  c.FormValue("location"),
		Phone:     c.FormValue("phone"),
		WhatsApp:  c.FormValue("whatsapp"),
		Instagram: c.FormValue("instagram"),
		ContactPreferences: entity.ContactPreferences{
			ShowPhone:     formBool(c, "show_phone", true),
			ShowWhatsApp:  formBool(c, "show_whatsapp", true),
			ShowInstagram: formBool(c, "show_instagram", true),
		},
	}

	avatar, err := readUpload(c, "avatar")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Could not read uploaded avatar")
	}
	input.Avatar = avatar

	user, err := h.profileUC.Update(c.Request().Context(), userID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Profile updated")
}

// Dashboard handles the caller's item dashboard
func (h *ProfileHandler) Dashboard(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.profileUC.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, dashboardView{
		Items: toItemViews(output.Items),
		Stats: dashboardStatsView{
			TotalItems:     output.Stats.TotalItems,
			AvailableItems: output.Stats.AvailableItems,
			ClaimedItems:   output.Stats.ClaimedItems,
		},
	}, "")
}

// Stats handles the caller's lifetime engagement counters
func (h *ProfileHandler) Stats(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	stats, err := h.profileUC.Stats(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if stats == nil {
		// Counters unavailable; the page renders without them.
		return response.Success(c, http.StatusOK, nil, "")
	}

	return response.Success(c, http.StatusOK, userStatsView{
		TotalItems:     stats.TotalItems,
		AvailableItems: stats.AvailableItems,
		ClaimedItems:   stats.ClaimedItems,
		TotalViews:     stats.TotalViews,
		TotalFavorites: stats.TotalFavorites,
	}, "")
}

// formBool parses a boolean form field, falling back when absent or invalid.
func formBool(c echo.Context, field string, fallback bool) bool {
	raw := c.FormValue(field)
	if raw == "" {
		return fallback
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return value
}
