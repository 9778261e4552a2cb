package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/wfetch/internal/report"
	"github.com/i474232898/wfetch/internal/store"
	"github.com/i474232898/wfetch/internal/weather"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. The handlers only
// read the config file; setup stays an interactive CLI concern. defaultUnits
// applies when a request carries no units parameter.
func RegisterRoutes(app *fiber.App, service *weather.Service, defaultUnits weather.Units) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "wfetch",
		})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		var q currentQuery
		if err := q.bind(c, defaultUnits); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec, err := service.Current(c.UserContext(), q.units)
		if err != nil {
			return mapError(err)
		}

		return c.JSON(fiber.Map{
			"weather": rec,
			"lines":   report.Render(rec),
		})
	})

	v1.Get("/locations/search", func(c *fiber.Ctx) error {
		q := searchQuery{Q: c.Query("q")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		locations, err := service.Search(c.UserContext(), q.Q)
		if err != nil {
			return mapError(err)
		}

		return c.JSON(fiber.Map{
			"query":     q.Q,
			"locations": locations,
		})
	})
}

// RequestID echoes the caller's X-Request-ID or assigns a fresh one.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
			c.Request().Header.Set(RequestIDHeader, id)
		}
		c.Set(RequestIDHeader, id)
		c.Locals("requestid", id)
		return c.Next()
	}
}

// ErrorHandler renders every error as a JSON envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":     true,
		"message":   err.Error(),
		"requestId": c.GetRespHeader(RequestIDHeader),
	})
}

// mapError translates domain failures into HTTP statuses.
func mapError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrParse),
		errors.Is(err, weather.ErrMissingCredential),
		errors.Is(err, weather.ErrMissingLocation):
		return fiber.NewError(fiber.StatusPreconditionFailed, err.Error())
	case errors.Is(err, weather.ErrFetch):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
}

// currentQuery holds query parameters for the current conditions endpoint.
type currentQuery struct {
	Units string `validate:"omitempty,max=16"`
	units weather.Units
}

func (q *currentQuery) bind(c *fiber.Ctx, def weather.Units) error {
	q.Units = c.Query("units")
	if err := validate.Struct(q); err != nil {
		return err
	}
	q.units = def
	if q.Units == "" {
		return nil
	}
	u, err := weather.ParseUnits(q.Units)
	if err != nil {
		return err
	}
	q.units = u
	return nil
}

// searchQuery holds query parameters for the location search endpoint.
type searchQuery struct {
	Q string `validate:"required"`
}
