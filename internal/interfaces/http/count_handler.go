package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/RestoStock-api/internal/application/count"
	"github.com/jhoicas/RestoStock-api/internal/application/dto"
	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// CountHandler maneja las sesiones de conteo físico y su conciliación (protegido).
type CountHandler struct {
	uc     *count.CountUseCase
	report *count.ReportUseCase
}

// NewCountHandler construye el handler.
func NewCountHandler(uc *count.CountUseCase, report *count.ReportUseCase) *CountHandler {
	return &CountHandler{uc: uc, report: report}
}

// Start godoc
// @Summary      Iniciar sesión de conteo
// @Tags         counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartCountRequest  true  "store_id"
// @Success      201   {object}  dto.CountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/counts [post]
func (h *CountHandler) Start(c *fiber.Ctx) error {
	accountID, userID, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.StartCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sc, err := h.uc.Start(c.Context(), accountID, userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(countToHTTP(sc, nil))
}

// AddEntry godoc
// @Summary      Agregar línea al conteo
// @Description  Solo mientras el conteo está in_progress. Un item por conteo:
//
//	repetirlo devuelve 409.
//
// @Tags         counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del conteo"
// @Param        body  body  dto.CountEntryRequest  true  "item_id, quantity"
// @Success      201   {object}  dto.CountEntryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/entries [post]
func (h *CountHandler) AddEntry(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CountEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.AddEntry(c.Context(), accountID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entryToHTTP(entry))
}

// UpdateEntry godoc
// @Summary      Editar línea de conteo
// @Tags         counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string  true  "ID del conteo"
// @Param        entryId  path  string  true  "ID de la línea"
// @Param        body     body  dto.CountEntryRequest  true  "quantity"
// @Success      200  {object}  dto.CountEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/entries/{entryId} [put]
func (h *CountHandler) UpdateEntry(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CountEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.UpdateEntry(c.Context(), accountID, c.Params("id"), c.Params("entryId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entryToHTTP(entry))
}

// DeleteEntry godoc
// @Summary      Eliminar línea de conteo
// @Tags         counts
// @Security     Bearer
// @Param        id       path  string  true  "ID del conteo"
// @Param        entryId  path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/entries/{entryId} [delete]
func (h *CountHandler) DeleteEntry(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.DeleteEntry(c.Context(), accountID, c.Params("id"), c.Params("entryId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Complete godoc
// @Summary      Cerrar el conteo
// @Description  Congela las líneas y fija total_value; el conteo queda listo
//
//	para aprobación.
//
// @Tags         counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del conteo"
// @Param        body  body  dto.CompleteCountRequest  false  "notes"
// @Success      200  {object}  dto.CountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/complete [post]
func (h *CountHandler) Complete(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CompleteCountRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	sc, err := h.uc.Complete(c.Context(), accountID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(countToHTTP(sc, nil))
}

// Approve godoc
// @Summary      Aprobar y conciliar el conteo
// @Description  Calcula el stock esperado por línea, fija la discrepancia y
//
//	registra los ADJUSTMENT compensatorios. Requiere rol admin o
//	manager. Idempotente vía bloqueo de fila: el segundo aprobador
//	concurrente recibe 422.
//
// @Tags         counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del conteo"
// @Param        body  body  dto.ApproveCountRequest  false  "pin_to_completion"
// @Success      200  {object}  dto.ApproveCountResult
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/approve [post]
func (h *CountHandler) Approve(c *fiber.Ctx) error {
	accountID, userID, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.ApproveCountRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	result, err := h.uc.Approve(c.Context(), accountID, userID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetByID godoc
// @Summary      Detalle de un conteo con sus líneas
// @Tags         counts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del conteo"
// @Success      200  {object}  dto.CountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/counts/{id} [get]
func (h *CountHandler) GetByID(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	sc, entries, err := h.uc.GetByID(c.Context(), accountID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(countToHTTP(sc, entries))
}

// List godoc
// @Summary      Listar conteos
// @Tags         counts
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  false  "Filtrar por sede"
// @Success      200  {array}  dto.CountResponse
// @Router       /api/counts [get]
func (h *CountHandler) List(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	counts, err := h.uc.List(c.Context(), accountID, c.Query("store_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CountResponse, 0, len(counts))
	for _, sc := range counts {
		out = append(out, countToHTTP(sc, nil))
	}
	return c.JSON(out)
}

// GetReport godoc
// @Summary      Reporte PDF del conteo aprobado
// @Tags         counts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del conteo"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/counts/{id}/report [get]
func (h *CountHandler) GetReport(c *fiber.Ctx) error {
	accountID, _, ok := requireIdentity(c)
	if !ok {
		return unauthorized(c)
	}
	countID := c.Params("id")
	pdf, err := h.report.Generate(c.Context(), accountID, countID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="conteo_%s.pdf"`, countID))
	return c.Send(pdf)
}

func countToHTTP(sc *entity.StockCount, entries []*entity.StockEntry) dto.CountResponse {
	resp := dto.CountResponse{
		ID:               sc.ID,
		StoreID:          sc.StoreID,
		UserID:           sc.UserID,
		Name:             sc.Name,
		Status:           sc.Status,
		ItemsCounted:     sc.ItemsCounted,
		TotalValue:       sc.TotalValue,
		ExpectedValue:    sc.ExpectedValue,
		DiscrepancyValue: sc.DiscrepancyValue,
		Notes:            sc.Notes,
		ApprovedBy:       sc.ApprovedBy,
		ApprovedAt:       sc.ApprovedAt,
		CreatedAt:        sc.CreatedAt,
		CompletedAt:      sc.CompletedAt,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, entryToHTTP(e))
	}
	return resp
}

func entryToHTTP(e *entity.StockEntry) dto.CountEntryResponse {
	return dto.CountEntryResponse{
		ID:               e.ID,
		ItemID:           e.ItemID,
		Quantity:         e.Quantity,
		UnitCost:         e.UnitCost,
		ExpectedQuantity: e.ExpectedQuantity,
		Discrepancy:      e.Discrepancy,
	}
}
