package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/RestoStock-api/internal/application/dto"
	"github.com/jhoicas/RestoStock-api/internal/application/transfer"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// TransferHandler maneja el ciclo de vida de los traslados entre sedes (protegido).
type TransferHandler struct {
	uc *transfer.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear traslado entre sedes
// @Description  El traslado nace PENDING; no toca el libro de movimientos
//
//	hasta completarse.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from_store_id, to_store_id, items"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	accountID, userID, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tr, err := h.uc.Create(c.Context(), accountID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(transferToResponse(tr))
}

// MarkInTransit godoc
// @Summary      Marcar traslado en tránsito
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/in-transit [post]
func (h *TransferHandler) MarkInTransit(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	tr, err := h.uc.MarkInTransit(c.Context(), accountID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transferToResponse(tr))
}

// Complete godoc
// @Summary      Completar traslado
// @Description  Registra en una sola transacción el par TRANSFER_OUT (origen,
//
//	negativo) y TRANSFER_IN (destino, positivo) por cada línea,
//	ambos referenciando el traslado.
//
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/complete [post]
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	accountID, userID, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	tr, err := h.uc.Complete(c.Context(), accountID, userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transferToResponse(tr))
}

// Cancel godoc
// @Summary      Cancelar traslado pendiente
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	tr, err := h.uc.Cancel(c.Context(), accountID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transferToResponse(tr))
}

// Delete godoc
// @Summary      Eliminar traslado no completado
// @Description  Un traslado COMPLETED ya escribió en el libro y no se puede
//
//	eliminar.
//
// @Tags         transfers
// @Security     Bearer
// @Param        id  path  string  true  "ID del traslado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [delete]
func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), accountID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Detalle de un traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	tr, err := h.uc.GetByID(c.Context(), accountID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transferToResponse(tr))
}

// List godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Sede origen o destino"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	transfers, err := h.uc.List(c.Context(), accountID, c.Query("store_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(transfers))
	for _, tr := range transfers {
		out = append(out, transferToResponse(tr))
	}
	return c.JSON(out)
}

func transferToResponse(t *entity.Transfer) dto.TransferResponse {
	items := make([]dto.TransferItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.TransferItemResponse{ItemID: it.ItemID, Quantity: it.Quantity})
	}
	return dto.TransferResponse{
		ID:          t.ID,
		FromStoreID: t.FromStoreID,
		ToStoreID:   t.ToStoreID,
		Status:      t.Status,
		Items:       items,
		Notes:       t.Notes,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		CompletedBy: t.CompletedBy,
		CompletedAt: t.CompletedAt,
	}
}
