package games

import (
	"uloggd/core/apierror"
	"uloggd/core/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BatchRequest is the body of a batch resolve.
type BatchRequest struct {
	Slugs   []string `json:"slugs" validate:"required,min=1,dive,required"`
	Partial *bool    `json:"partial,omitempty"`
}

// Handler handles HTTP requests for catalog games.
type Handler struct {
	service  *Service
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, validate: validator.New(), logger: logger}
}

// RegisterRoutes registers the games routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/games")
	group.Post("/batch", h.HandleBatch)
	group.Delete("/cache", h.HandleClearCache)
	group.Get("/:slug", h.HandleGame)
}

// HandleBatch resolves a batch of slugs.
// @Summary Resolve Games
// @Description Resolves up to the configured batch size of game slugs. Cached records are served from the cache, the rest are fetched from IGDB. Unknown slugs are absent from the result.
// @Tags games
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Slugs to resolve"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]interface{} "Validation Error"
// @Failure 502 {object} map[string]interface{} "Upstream Error"
// @Router /games/batch [post]
func (h *Handler) HandleBatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.Respond(c, apierror.Validation("invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return apierror.Respond(c, apierror.Validation("slugs must be a non-empty array of non-empty strings"))
	}

	result, err := h.service.Resolve(c.UserContext(), req.Slugs, req.Partial)
	if err != nil {
		l.Warn("Batch resolve failed", zap.Int("slugs", len(req.Slugs)), zap.Error(err))
		return apierror.Respond(c, err)
	}

	l.Debug("Batch resolved", zap.Int("requested", len(req.Slugs)), zap.Int("resolved", len(result.Games)))
	return c.JSON(result)
}

// HandleGame returns a single game.
// @Summary Get Game
// @Description Returns one game by slug.
// @Tags games
// @Produce json
// @Param slug path string true "Game slug"
// @Success 200 {object} Game
// @Failure 404 {object} map[string]interface{} "Not Found"
// @Failure 502 {object} map[string]interface{} "Upstream Error"
// @Router /games/{slug} [get]
func (h *Handler) HandleGame(c *fiber.Ctx) error {
	game, err := h.service.Game(c.UserContext(), c.Params("slug"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(game)
}

// HandleClearCache drops cached game records.
// @Summary Clear Game Cache
// @Description Removes every cached game record. Subsequent lookups refetch from IGDB.
// @Tags games
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /games/cache [delete]
func (h *Handler) HandleClearCache(c *fiber.Ctx) error {
	logger.WithRayID(h.logger, c).Info("Clearing game cache")
	return c.JSON(fiber.Map{"cleared": h.service.ClearCache(c.UserContext())})
}
