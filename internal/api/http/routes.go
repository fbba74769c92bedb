package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-lookup/internal/common"
	"github.com/i474232898/weather-lookup/internal/session"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
)

var validate = validator.New()

// Options configures the routes.
type Options struct {
	// IconBaseURL is the icon host used in views.
	IconBaseURL string
	// LookupTimeout bounds each lookup run on behalf of a session.
	LookupTimeout time.Duration
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, fetcher session.Fetcher, sessions *store.MemoryStore, opts Options) {
	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "weather-lookup",
			"sessions": sessions.Len(),
		})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, invalidLocationMessage)
		}

		ctx := c.UserContext()
		if opts.LookupTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.LookupTimeout)
			defer cancel()
		}

		report, err := fetcher.FetchForecast(ctx, q.Location)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, weather.LookupFailedMessage)
		}

		return c.JSON(weather.BuildView(report, opts.IconBaseURL))
	})

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		id := sessions.Create(session.NewController(fetcher, opts.LookupTimeout))
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	})

	v1.Get("/sessions/:id", func(c *fiber.Ctx) error {
		ctrl, err := lookupSession(sessions, c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(newStateView(c.Params("id"), ctrl.State(), false, opts.IconBaseURL))
	})

	v1.Post("/sessions/:id/submit", func(c *fiber.Ctx) error {
		ctrl, err := lookupSession(sessions, c.Params("id"))
		if err != nil {
			return err
		}

		var req submitRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		state, applied := ctrl.Submit(c.UserContext(), req.Location)
		submitted := !common.IsBlank(req.Location)
		view := newStateView(c.Params("id"), state, submitted, opts.IconBaseURL)
		view.Superseded = submitted && !applied

		return c.JSON(view)
	})

	v1.Delete("/sessions/:id", func(c *fiber.Ctx) error {
		if err := sessions.Delete(c.Params("id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "unknown session")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete session")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

const invalidLocationMessage = "location is required and at most 200 characters"

// locationQuery holds query parameters for a stateless lookup.
type locationQuery struct {
	Location string `validate:"required,max=200"`
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.Location = common.NormalizeLocation(c.Query("location"))

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// submitRequest is the body of a session submission. An empty location is
// allowed and is a no-op.
type submitRequest struct {
	Location string `json:"location"`
}

func lookupSession(sessions *store.MemoryStore, id string) (*session.Controller, error) {
	ctrl, err := sessions.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "unknown session")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to load session")
	}
	return ctrl, nil
}
