package controller

import (
	"crm-renewal-be/internal/dto"
	"crm-renewal-be/internal/pkg/serverutils"
	"crm-renewal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProductHistoryController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Update(ctx *fiber.Ctx) error
	ListRenewals(ctx *fiber.Ctx) error
}

type productHistoryController struct {
	historyService service.IProductHistoryService
}

func NewProductHistoryController(historyService service.IProductHistoryService) IProductHistoryController {
	return &productHistoryController{
		historyService: historyService,
	}
}

func (c *productHistoryController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/history", jwtMiddleware)
	h.Patch(":id", c.Update)
	h.Get(":id/renewals", c.ListRenewals)
}

// Update advances a renewal-eligible history entry, manually or by cadence
// @Summary Update product history
// @Tags History
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param mode query string false "manual (default) or autofill"
// @Success 200 {object} dto.UpdateHistoryResponse
// @Router /api/history/{id} [patch]
func (c *productHistoryController) Update(ctx *fiber.Ctx) error {
	scope, err := serverutils.ScopeFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid history ID")
	}

	var req dto.UpdateHistoryRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.historyService.Update(ctx.UserContext(), scope, id, ctx.Query("mode"), &req, serverutils.ActorFromCtx(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("History updated", res))
}

// ListRenewals returns the renewal ledger of a history entry, newest first
// @Summary List renewal history
// @Tags History
// @Security BearerAuth
// @Produce json
// @Success 200 {object} []dto.RenewalRecordResponse
// @Router /api/history/{id}/renewals [get]
func (c *productHistoryController) ListRenewals(ctx *fiber.Ctx) error {
	scope, err := serverutils.ScopeFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid history ID")
	}

	res, err := c.historyService.ListRenewals(ctx.UserContext(), scope, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Renewal history retrieved", res))
}
