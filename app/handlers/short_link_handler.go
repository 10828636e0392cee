package handlers

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"

	"github.com/amirphl/Yatagarasu/app/dto"
	businessflow "github.com/amirphl/Yatagarasu/business_flow"
	"github.com/amirphl/Yatagarasu/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// aliasPattern is the charset rule for caller-supplied aliases. Aliases are
// case-sensitive and never normalized; the rule only fences the charset and
// length so aliases stay routable as a single path segment.
var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ShortLinkHandlerInterface defines the contract for authenticated short link management
type ShortLinkHandlerInterface interface {
	Create(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
	ClickInfo(c fiber.Ctx) error
}

// ShortLinkHandler handles short link management HTTP requests
type ShortLinkHandler struct {
	flow      businessflow.ShortLinkFlow
	validator *validator.Validate
}

// NewShortLinkHandler creates a new short link management handler
func NewShortLinkHandler(flow businessflow.ShortLinkFlow) ShortLinkHandlerInterface {
	handler := &ShortLinkHandler{
		flow:      flow,
		validator: validator.New(),
	}
	handler.setupCustomValidations()
	return handler
}

func (h *ShortLinkHandler) setupCustomValidations() {
	_ = h.validator.RegisterValidation("alias", func(fl validator.FieldLevel) bool {
		alias := fl.Field().String()
		return len(alias) <= utils.MaxAliasLength && aliasPattern.MatchString(alias)
	})
}

func (h *ShortLinkHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *ShortLinkHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *ShortLinkHandler) customerID(c fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("customer_id").(uint)
	return id, ok
}

// Create shortens a URL for the authenticated customer
func (h *ShortLinkHandler) Create(c fiber.Ctx) error {
	customerID, ok := h.customerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Not authenticated", "NOT_AUTHENTICATED", nil)
	}

	var req dto.CreateShortLinkRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", collectValidationErrors(err))
	}

	result, err := h.flow.Create(h.createRequestContext(c, "/api/v1/links"), customerID, &req)
	if err != nil {
		if businessflow.IsAliasTaken(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Alias already taken", "ALIAS_TAKEN", nil)
		}
		var berr *businessflow.BusinessError
		if errors.As(err, &berr) && berr.Code == "VALIDATION_ERROR" {
			return h.ErrorResponse(c, fiber.StatusBadRequest, berr.Message, berr.Code, nil)
		}
		log.Printf("Create short link failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create short link", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Short link created", result)
}

// List returns the authenticated customer's links; an empty list is success
func (h *ShortLinkHandler) List(c fiber.Ctx) error {
	customerID, ok := h.customerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Not authenticated", "NOT_AUTHENTICATED", nil)
	}

	result, err := h.flow.List(h.createRequestContext(c, "/api/v1/links"), customerID)
	if err != nil {
		log.Printf("List short links failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list short links", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Short links loaded", result)
}

// Delete removes a link and its click events; only the owner may delete
func (h *ShortLinkHandler) Delete(c fiber.Ctx) error {
	customerID, ok := h.customerID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Not authenticated", "NOT_AUTHENTICATED", nil)
	}

	uid := c.Params("uid")
	if uid == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Identifier is required", "VALIDATION_ERROR", nil)
	}

	err := h.flow.Delete(h.createRequestContext(c, "/api/v1/links/"+uid), customerID, uid)
	if err != nil {
		if businessflow.IsShortLinkNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Short link not found", "SHORT_LINK_NOT_FOUND", nil)
		}
		if businessflow.IsNotLinkOwner(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "You are not authorized to delete this short link", "NOT_LINK_OWNER", nil)
		}
		log.Printf("Delete short link failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete short link", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Short link and related clicks deleted", nil)
}

// ClickInfo returns a link together with every recorded click event
func (h *ShortLinkHandler) ClickInfo(c fiber.Ctx) error {
	if _, ok := h.customerID(c); !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Not authenticated", "NOT_AUTHENTICATED", nil)
	}

	uid := c.Params("uid")
	if uid == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Identifier is required", "VALIDATION_ERROR", nil)
	}

	result, err := h.flow.ClickInfo(h.createRequestContext(c, "/api/v1/links/"+uid+"/clicks"), uid)
	if err != nil {
		if businessflow.IsShortLinkNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Short link not found", "SHORT_LINK_NOT_FOUND", nil)
		}
		if businessflow.IsNoClicksRecorded(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "No click information found for this short link", "NO_CLICKS_RECORDED", nil)
		}
		log.Printf("Click info fetch failed: %v", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load click information", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Click information loaded", result)
}

func (h *ShortLinkHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
