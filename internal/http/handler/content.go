package handler

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campusdocs/internal/http/middleware"
	"campusdocs/internal/i18n"
	"campusdocs/internal/model"
	"campusdocs/internal/service"
)

// principalOr401 reads the authenticated principal set by the middleware.
func principalOr401(c *fiber.Ctx) (model.Principal, error) {
	p, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return model.Principal{}, writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}
	return p, nil
}

// langFrom picks the response language: explicit ?lang= wins, then the
// Accept-Language primary subtag.
func langFrom(c *fiber.Ctx) string {
	if l := c.Query("lang"); l != "" {
		return l
	}
	al := c.Get(fiber.HeaderAcceptLanguage)
	if al == "" {
		return ""
	}
	tag := strings.TrimSpace(strings.Split(al, ",")[0])
	return strings.Split(tag, "-")[0]
}

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a dependency-free liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// UploadContent handles multipart uploads (field name: file). Metadata comes
// from the subject_id and title form values.
func UploadContent(svc service.ContentService, loc *i18n.Localizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principalOr401(c)
		if err != nil {
			return err
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		asset, err := svc.Upload(c.UserContext(), p, f, service.UploadInput{
			SubjectID:        c.FormValue("subject_id"),
			Title:            c.FormValue("title"),
			OriginalFilename: fh.Filename,
			ContentType:      ct,
			Size:             fh.Size,
			Lang:             langFrom(c),
		})
		if err != nil {
			return writeServiceError(c, loc, err)
		}
		return c.Status(fiber.StatusCreated).JSON(asset)
	}
}

// ListContents lists assets with limit & offset, optionally scoped to a
// subject via ?subject_id=.
func ListContents(svc service.ContentService, loc *i18n.Localizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := principalOr401(c); err != nil {
			return err
		}

		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), c.Query("subject_id"), limit, offset)
		if err != nil {
			return writeServiceError(c, loc, err)
		}
		return c.JSON(res)
	}
}

// GetContent returns asset metadata by ID.
func GetContent(svc service.ContentService, loc *i18n.Localizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := principalOr401(c); err != nil {
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
		return c.JSON(asset)
	}
}

// DeleteContent removes an asset. Owner or admin only.
func DeleteContent(svc service.ContentService, loc *i18n.Localizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principalOr401(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), p, id); err != nil {
			return writeServiceError(c, loc, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

type approvalRequest struct {
	Status string `json:"status"`
}

// SetContentApproval transitions an asset's approval status. Admins only.
func SetContentApproval(svc service.ContentService, loc *i18n.Localizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principalOr401(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req approvalRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		if err := svc.SetApproval(c.UserContext(), p, id, req.Status); err != nil {
			return writeServiceError(c, loc, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
