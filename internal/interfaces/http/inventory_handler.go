package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/RestoStock-api/internal/application/dto"
	"github.com/jhoicas/RestoStock-api/internal/application/ledger"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del libro de movimientos y del
// stock derivado (protegido).
type InventoryHandler struct {
	uc *ledger.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// AppendMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Agrega una entrada al libro. La merma (WASTE) siempre se
//
//	registra como cantidad negativa, venga con el signo que venga.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AppendMovementRequest  true  "item_id, store_id, type, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) AppendMovement(c *fiber.Ctx) error {
	accountID, userID, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.AppendMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.Append(c.Context(), accountID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementToResponse(mov))
}

// CorrectMovement godoc
// @Summary      Corregir un movimiento manual
// @Description  No muta el original: registra un ADJUSTMENT compensatorio con
//
//	la diferencia hacia la nueva cantidad. Solo corrige movimientos
//	manuales; los generados por traslados o conteos son inmutables.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento original"
// @Param        body  body  dto.CorrectMovementRequest  true  "new_quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id}/corrections [post]
func (h *InventoryHandler) CorrectMovement(c *fiber.Ctx) error {
	accountID, userID, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CorrectMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.Correct(c.Context(), accountID, userID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementToResponse(mov))
}

// ListMovements godoc
// @Summary      Listar movimientos del libro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtrar por sede"
// @Param        item_id   query  string  false  "Filtrar por item"
// @Param        type      query  string  false  "Filtrar por tipo de movimiento"
// @Param        from      query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to        query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	movements, err := h.uc.List(c.Context(), accountID, in)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, movementToResponse(m))
	}
	return c.JSON(out)
}

// GetCurrentStock godoc
// @Summary      Stock actual por item
// @Description  El stock nunca se persiste: es la suma de las cantidades
//
//	firmadas del libro por (item, sede).
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtrar por sede. Vacío = todas."
// @Success      200  {array}   dto.CurrentStockDTO
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetCurrentStock(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	stock, err := h.uc.CurrentStock(c.Context(), accountID, c.Query("store_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

// GetAlerts godoc
// @Summary      Alertas de stock bajo / sobre-stock
// @Description  Critical si la cantidad está por debajo del 25% del mínimo;
//
//	warning en el resto de los casos. Critical primero.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtrar por sede. Vacío = todas."
// @Success      200  {array}   dto.AlertDTO
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) GetAlerts(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	alerts, err := h.uc.Alerts(c.Context(), accountID, c.Query("store_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(alerts)
}

func movementToResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ItemID:        m.ItemID,
		StoreID:       m.StoreID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		Reason:        m.Reason,
		Notes:         m.Notes,
		ReferenceID:   m.ReferenceID,
		ReferenceType: m.ReferenceType,
		CostPrice:     m.CostPrice,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
