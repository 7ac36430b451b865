package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/RestoStock-api/internal/application/dto"
	"github.com/jhoicas/RestoStock-api/internal/application/master"
)

// MasterHandler expone los datos de referencia y las notificaciones (protegido).
type MasterHandler struct {
	uc *master.MasterUseCase
}

// NewMasterHandler construye el handler.
func NewMasterHandler(uc *master.MasterUseCase) *MasterHandler {
	return &MasterHandler{uc: uc}
}

// ListItems godoc
// @Summary      Catálogo de items
// @Tags         master
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *MasterHandler) ListItems(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	items, err := h.uc.ListItems(c.Context(), accountID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// ListStores godoc
// @Summary      Sedes de la cuenta
// @Tags         master
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StoreResponse
// @Router       /api/stores [get]
func (h *MasterHandler) ListStores(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	stores, err := h.uc.ListStores(c.Context(), accountID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stores)
}

// ListNotifications godoc
// @Summary      Notificaciones de discrepancia
// @Tags         master
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *MasterHandler) ListNotifications(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	notifications, err := h.uc.ListNotifications(c.Context(), accountID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notifications)
}
