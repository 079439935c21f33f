package library

import (
	"uloggd/core/apierror"
	"uloggd/core/logger"
	"uloggd/core/shortid"
	"uloggd/core/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StateRequest is the body of a state update.
type StateRequest struct {
	GameID int64  `json:"game_id" validate:"required,gt=0"`
	Field  string `json:"field" validate:"required,oneof=status playing backlog wishlist liked"`
	Value  any    `json:"value"`
}

// EventRequest is the body of a new log entry.
type EventRequest struct {
	GameID   int64   `json:"game_id" validate:"required,gt=0"`
	GameSlug string  `json:"game_slug" validate:"required,max=255"`
	Rating   *int    `json:"rating" validate:"omitempty,min=0,max=100"`
	Status   *string `json:"status" validate:"omitempty,oneof=played completed retired shelved abandoned"`
	Playing  bool    `json:"playing"`
	Backlog  bool    `json:"backlog"`
	Wishlist bool    `json:"wishlist"`
	Liked    bool    `json:"liked"`
}

// Handler handles HTTP requests for user libraries.
type Handler struct {
	service  *Service
	codec    *shortid.Codec
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler. User ids in paths are decoded with codec.
func NewHandler(service *Service, codec *shortid.Codec, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, codec: codec, validate: validator.New(), logger: logger}
}

// RegisterRoutes registers the library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/library/:user")
	group.Get("/", h.HandleLibrary)
	group.Put("/games/:slug", h.HandleUpdateState)
	group.Post("/events", h.HandleAppendEvent)
}

func (h *Handler) userID(c *fiber.Ctx) (string, error) {
	id, err := h.codec.Decode(c.Params("user"))
	if err != nil {
		return "", apierror.Validation("invalid user id")
	}
	return id, nil
}

// HandleLibrary returns a user's reconciled library.
// @Summary Get Library
// @Description Merges the user's game states and log entries into one entry per game, with per-shelf counters. The user id may be a UUID or its short id.
// @Tags library
// @Produce json
// @Param user path string true "User id (UUID or short id)"
// @Param shelf query string false "Shelf filter (all, playing, played, completed, backlog, wishlist, dropped, shelved, retired, liked, rated)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} Library
// @Failure 400 {object} map[string]interface{} "Validation Error"
// @Router /library/{user} [get]
func (h *Handler) HandleLibrary(c *fiber.Ctx) error {
	userID, err := h.userID(c)
	if err != nil {
		return apierror.Respond(c, err)
	}

	lib, err := h.service.Library(c.UserContext(), userID, Query{
		Shelf: c.Query("shelf"),
		Page:  utils.ToIntOr(c.Query("page"), 1),
		Limit: utils.ToIntOr(c.Query("limit"), defaultPageSize),
	})
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Library load failed", zap.String("user_id", userID), zap.Error(err))
		return apierror.Respond(c, err)
	}

	if id, err := uuid.Parse(userID); err == nil {
		lib.ShortID = shortid.Encode(id)
	}
	return c.JSON(lib)
}

// HandleUpdateState changes one field of a game's library state.
// @Summary Update Game State
// @Description Sets one of status, playing, backlog, wishlist or liked. A state left empty is deleted instead of stored.
// @Tags library
// @Accept json
// @Produce json
// @Param user path string true "User id (UUID or short id)"
// @Param slug path string true "Game slug"
// @Param request body StateRequest true "Field update"
// @Success 200 {object} UpdateResult
// @Failure 400 {object} map[string]interface{} "Validation Error"
// @Router /library/{user}/games/{slug} [put]
func (h *Handler) HandleUpdateState(c *fiber.Ctx) error {
	userID, err := h.userID(c)
	if err != nil {
		return apierror.Respond(c, err)
	}

	var req StateRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.Respond(c, apierror.Validation("invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return apierror.Respond(c, apierror.Validation("%s", err.Error()))
	}

	result, err := h.service.UpdateState(c.UserContext(), userID, Update{
		GameID:   req.GameID,
		GameSlug: c.Params("slug"),
		Field:    req.Field,
		Value:    req.Value,
	})
	if err != nil {
		if !apierror.Is(err, apierror.KindValidation) {
			logger.WithRayID(h.logger, c).Error("State update failed", zap.String("user_id", userID), zap.Error(err))
		}
		return apierror.Respond(c, err)
	}
	return c.JSON(result)
}

// HandleAppendEvent records a log entry.
// @Summary Append Log Entry
// @Description Appends an immutable log entry, optionally rated 0-100.
// @Tags library
// @Accept json
// @Produce json
// @Param user path string true "User id (UUID or short id)"
// @Param request body EventRequest true "Log entry"
// @Success 201 {object} GameLog
// @Failure 400 {object} map[string]interface{} "Validation Error"
// @Router /library/{user}/events [post]
func (h *Handler) HandleAppendEvent(c *fiber.Ctx) error {
	userID, err := h.userID(c)
	if err != nil {
		return apierror.Respond(c, err)
	}

	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.Respond(c, apierror.Validation("invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return apierror.Respond(c, apierror.Validation("%s", err.Error()))
	}

	ev := &GameLog{
		GameID:   req.GameID,
		GameSlug: req.GameSlug,
		Rating:   req.Rating,
		Status:   req.Status,
		Playing:  req.Playing,
		Backlog:  req.Backlog,
		Wishlist: req.Wishlist,
		Liked:    req.Liked,
	}
	if err := h.service.AppendEvent(c.UserContext(), userID, ev); err != nil {
		return apierror.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ev)
}
