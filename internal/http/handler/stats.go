package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campusdocs/internal/i18n"
	"campusdocs/internal/quota"
	"campusdocs/internal/service"
)

// UserAccessStats aggregates one user's reads. Callers may inspect themselves;
// anyone else requires a privileged role.
func UserAccessStats(stats *quota.Engine, loc *i18n.Localizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principalOr401(c)
		if err != nil {
			return err
		}

		userID := c.Params("id")
		if userID != p.UserID && !p.Privileged() {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "insufficient permissions")
		}

		res, err := stats.UserStats(c.UserContext(), userID)
		if err != nil {
			return writeServiceError(c, loc, err)
		}
		return c.JSON(res)
	}
}

// ContentAccessStats aggregates one content's reads. Owner or privileged only.
func ContentAccessStats(svc service.ContentService, stats *quota.Engine, loc *i18n.Localizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principalOr401(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		asset, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, loc, err)
		}
		if !p.Privileged() && p.UserID != asset.OwnerID {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "insufficient permissions")
		}

		res, err := stats.ContentStats(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, loc, err)
		}
		return c.JSON(res)
	}
}
