package handler

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"opencycle/internal/delivery/http/middleware"
	"opencycle/internal/delivery/http/response"
	"opencycle/internal/domain/entity"
	"opencycle/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ItemHandlerParams holds dependencies for ItemHandler, injected by Fx.
type ItemHandlerParams struct {
	fx.In

	ItemUC usecase.ItemUsecase
	Logger *slog.Logger
}

// ItemHandler holds dependencies for item-related handlers.
type ItemHandler struct {
	itemUC usecase.ItemUsecase
	logger *slog.Logger
}

// NewItemHandler is the constructor for ItemHandler.
func NewItemHandler(params ItemHandlerParams) *ItemHandler {
	return &ItemHandler{
		itemUC: params.ItemUC,
		logger: params.Logger,
	}
}

// SetAvailabilityRequest represents the request body for marking an item
// available or claimed
type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

// List handles the browse feed of available items
func (h *ItemHandler) List(c echo.Context) error {
	filter := entity.ItemFilter{
		Term:      c.QueryParam("term"),
		Category:  c.QueryParam("category"),
		Condition: entity.Condition(c.QueryParam("condition")),
	}

	items, err := h.itemUC.ListAvailable(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toItemViews(items), "")
}

// ListMine handles listing all of the caller's items
func (h *ItemHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	items, err := h.itemUC.ListMine(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toItemViews(items), "")
}

// Get handles the item detail page. Page visits are reported separately
// through RecordView.
func (h *ItemHandler) Get(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	viewerID := middleware.GetOptionalUserID(c)

	detail, err := h.itemUC.Get(c.Request().Context(), itemID, viewerID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toItemDetailView(detail), "")
}

// Stats returns the item's engagement counters. Counters that cannot be
// computed are served as absent rather than an error.
func (h *ItemHandler) Stats(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	stats := h.itemUC.Stats(c.Request().Context(), itemID)
	if stats == nil {
		return response.Success(c, http.StatusOK, nil, "")
	}

	return response.Success(c, http.StatusOK, itemStatsView{
		ViewCount:     stats.ViewCount,
		FavoriteCount: stats.FavoriteCount,
		UniqueViewers: stats.UniqueViewers,
	}, "")
}

// RecordView registers a page visit. The response is positive regardless of
// whether the write succeeded.
func (h *ItemHandler) RecordView(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	viewerID := middleware.GetOptionalUserID(c)
	h.itemUC.RecordView(c.Request().Context(), itemID, viewerID, c.Request().UserAgent())

	return response.Success(c, http.StatusAccepted, nil, "")
}

// Create handles listing a new item with an optional photo. The request is
// multipart form data so the photo rides along with the fields.
func (h *ItemHandler) Create(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	input := usecase.CreateItemInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Condition:   entity.Condition(c.FormValue("condition")),
		Location:    c.FormValue("location"),
	}
	if input.Title == "" || input.Description == "" || input.Category == "" || input.Location == "" {
		return response.BadRequest(c, "VALIDATION_FAILED", "Title, description, category and location are required")
	}

	upload, err := readUpload(c, "image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Could not read uploaded image")
	}
	input.Image = upload

	item, err := h.itemUC.Create(c.Request().Context(), userID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toItemView(item), "Item listed successfully")
}

// SetAvailability handles marking an item as available or claimed
func (h *ItemHandler) SetAvailability(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	var req SetAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid availability input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	if err := h.itemUC.SetAvailability(c.Request().Context(), itemID, userID, *req.IsAvailable); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"is_available": *req.IsAvailable}, "Availability updated")
}

// Delete handles permanent removal of an item
func (h *ItemHandler) Delete(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	if err := h.itemUC.Delete(c.Request().Context(), itemID, userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Item deleted"}, "Item deleted")
}

// ToggleFavorite handles flipping the caller's favorite on an item
func (h *ItemHandler) ToggleFavorite(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	favorited, err := h.itemUC.ToggleFavorite(c.Request().Context(), userID, itemID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"favorited": favorited}, "")
}

// Search handles relevance-ranked full-text search
func (h *ItemHandler) Search(c echo.Context) error {
	input := usecase.SearchItemsInput{
		Query: c.QueryParam("q"),
	}
	if limit := c.QueryParam("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "limit must be an integer")
		}
		input.Limit = n
	}
	if offset := c.QueryParam("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "offset must be an integer")
		}
		input.Offset = n
	}

	ranked, err := h.itemUC.Search(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toRankedItemViews(ranked), "")
}

// ShareQR renders the item's share QR code as a PNG
func (h *ItemHandler) ShareQR(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	png, err := h.itemUC.ShareQR(c.Request().Context(), itemID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// readUpload buffers an optional multipart file field. A missing field is
// not an error; the returned upload is nil.
func readUpload(c echo.Context, field string) (*usecase.FileUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		// Non-multipart requests simply have no file.
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}

		return nil, errors.WithStack(err)
	}

	return bufferUpload(fileHeader)
}

func bufferUpload(fileHeader *multipart.FileHeader) (*usecase.FileUpload, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &usecase.FileUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        data,
	}, nil
}
