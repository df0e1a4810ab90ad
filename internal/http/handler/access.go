package handler

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campusdocs/internal/i18n"
	"campusdocs/internal/model"
	"campusdocs/internal/service"
)

// clientInfo captures the request attribution stored in the access log.
func clientInfo(c *fiber.Ctx) model.ClientInfo {
	return model.ClientInfo{
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	}
}

// setDeliveryHeaders marks a content response as per-viewer and uncacheable.
// Every delivered byte stream is personalized, so intermediaries must never
// serve one viewer's copy to another.
func setDeliveryHeaders(c *fiber.Ctx, contentType, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, url.PathEscape(filename)))
	c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate, private")
	c.Set("Pragma", "no-cache")
	c.Set("Expires", "0")
}

// queryInt parses a query parameter, silently falling back to def on absence
// or parse failure.
func queryInt(c *fiber.Ctx, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// StreamContent delivers the whole document, watermarked per viewer.
func StreamContent(gate service.AccessGate, loc *i18n.Localizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principalOr401(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := gate.Stream(c.UserContext(), p, id, langFrom(c), clientInfo(c))
		if err != nil {
			return writeServiceError(c, loc, err)
		}

		setDeliveryHeaders(c, res.ContentType, res.Filename)
		return c.Status(fiber.StatusOK).Send(res.Data)
	}
}

// ContentPages delivers one watermarked page chunk with pagination headers.
func ContentPages(gate service.AccessGate, loc *i18n.Localizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principalOr401(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		// Malformed start/count fall back to defaults rather than erroring.
		start := queryInt(c, "start", 0)
		count := queryInt(c, "count", 0)

		res, err := gate.Pages(c.UserContext(), p, id, langFrom(c), start, count, clientInfo(c))
		if err != nil {
			return writeServiceError(c, loc, err)
		}

		setDeliveryHeaders(c, model.MimePDF, res.Filename)
		c.Set("X-Total-Pages", strconv.Itoa(res.TotalPages))
		c.Set("X-Start-Page", strconv.Itoa(res.StartPage))
		c.Set("X-End-Page", strconv.Itoa(res.EndPage))
		c.Set("X-Has-More", strconv.FormatBool(res.HasMore))
		return c.Status(fiber.StatusOK).Send(res.Data)
	}
}

// ContentPageCount reports the page count and chunk size constant.
func ContentPageCount(gate service.AccessGate, loc *i18n.Localizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principalOr401(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		res, err := gate.PageCount(c.UserContext(), p, id)
		if err != nil {
			return writeServiceError(c, loc, err)
		}
		return c.JSON(res)
	}
}

// ContentQuota reports the caller's remaining budget for the content.
func ContentQuota(gate service.AccessGate, loc *i18n.Localizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principalOr401(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		st, err := gate.Quota(c.UserContext(), p, id)
		if err != nil {
			return writeServiceError(c, loc, err)
		}
		return c.JSON(st)
	}
}

type downloadURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in_seconds"`
}

// ContentDownloadURL returns a short-lived signed URL for the raw object.
// Privileged callers only; the watermark pipeline is bypassed.
func ContentDownloadURL(gate service.AccessGate, loc *i18n.Localizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := principalOr401(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		u, err := gate.DownloadURL(c.UserContext(), p, id, clientInfo(c))
		if err != nil {
			return writeServiceError(c, loc, err)
		}
		return c.JSON(downloadURLResponse{URL: u, ExpiresIn: 15 * 60})
	}
}
