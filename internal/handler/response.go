package handler

import (
	"errors"
	"log"
	"strconv"
	"time"

	"computer-store-ws/internal/service"
	"computer-store-ws/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// respondError maps a service error onto the JSON error body
func respondError(c *fiber.Ctx, err error) error {
	status := apperror.HTTPStatus(err)
	body := fiber.Map{"error": err.Error(), "kind": apperror.Kind(err)}

	var (
		ve *apperror.ValidationError
		pe *apperror.PolicyError
	)
	switch {
	case status == fiber.StatusInternalServerError:
		log.Printf("handler: %s %s: %v", c.Method(), c.Path(), err)
		body["error"] = "internal server error"
	case errors.As(err, &ve) && len(ve.Fields) > 0:
		body["fields"] = ve.Fields
	case errors.As(err, &pe):
		switch pe.Kind {
		case apperror.MarkupExceeded:
			body["percentage"] = pe.Percentage
		case apperror.CashLimitExceeded:
			body["limit"] = pe.Limit
			body["attempted"] = pe.Attempted
		}
	}
	return c.Status(status).JSON(body)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message, "kind": "VALIDATION"})
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	return id, err == nil
}

// parseDate reads a YYYY-MM-DD value as a calendar day in loc; empty means today
func parseDate(value string, cal service.Calendar) (time.Time, error) {
	if value == "" {
		return cal.Now().In(cal.Location), nil
	}
	return time.ParseInLocation(dateLayout, value, cal.Location)
}

// period reads the inclusive from/to query pair, both defaulting to today
func period(c *fiber.Ctx, cal service.Calendar) (time.Time, time.Time, error) {
	from, err := parseDate(c.Query("from"), cal)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate(c.Query("to"), cal)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to is before from")
	}
	return from, to, nil
}

// yearMonth reads year/month query params, defaulting to the current month
func yearMonth(c *fiber.Ctx, cal service.Calendar) (int, time.Month, error) {
	now := cal.Now().In(cal.Location)
	year, month := now.Year(), now.Month()

	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			return 0, 0, errors.New("invalid year")
		}
		year = y
	}
	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, errors.New("invalid month, use 1-12")
		}
		month = time.Month(m)
	}
	return year, month, nil
}
