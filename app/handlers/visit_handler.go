package handlers

import (
	"context"
	"log"
	"time"

	"github.com/amirphl/Yatagarasu/app/dto"
	"github.com/amirphl/Yatagarasu/app/workers"
	businessflow "github.com/amirphl/Yatagarasu/business_flow"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/gofiber/fiber/v3"
)

// VisitHandlerInterface defines the contract for the public redirect endpoint
type VisitHandlerInterface interface {
	Visit(c fiber.Ctx) error
}

// VisitHandler resolves identifiers to their targets and hands the click
// off to the background recorder. The redirect never waits on persistence.
type VisitHandler struct {
	flow   businessflow.ShortLinkVisitFlow
	events chan<- businessflow.ClickEvent
}

// NewVisitHandler creates a new public visit handler
func NewVisitHandler(flow businessflow.ShortLinkVisitFlow, events chan<- businessflow.ClickEvent) VisitHandlerInterface {
	return &VisitHandler{flow: flow, events: events}
}

func (h *VisitHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code: errorCode,
		},
	})
}

// Visit resolves a short link and redirects the visitor to its target.
// A click event is enqueued only after a successful resolution, so unknown
// identifiers leave no trace in the click log.
func (h *VisitHandler) Visit(c fiber.Ctx) error {
	uid := c.Params("uid")
	if uid == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Identifier is required", "VALIDATION_ERROR")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, clientIP(c))
	ctx = context.WithValue(ctx, utils.EndpointKey, "/:uid")

	target, err := h.flow.Visit(ctx, uid)
	if err != nil {
		if businessflow.IsShortLinkNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Short link not found", "SHORT_LINK_NOT_FOUND")
		}
		if businessflow.IsShortLinkExpired(err) {
			return h.ErrorResponse(c, fiber.StatusGone, "Short link has expired", "SHORT_LINK_EXPIRED")
		}
		log.Printf("Visit failed for %s: %v", uid, err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to resolve short link", "INTERNAL_ERROR")
	}

	workers.Enqueue(h.events, businessflow.ClickEvent{
		UID:       uid,
		UserAgent: c.Get("User-Agent"),
		IPAddress: clientIP(c),
		Timestamp: utils.UTCNow(),
	})

	return c.Redirect().Status(fiber.StatusFound).To(target)
}
