package controller

import (
	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/pkg/serverutils"
	"crm-renewal-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	SweepExpired(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	subscriptionService service.ISubscriptionService
}

func NewSubscriptionController(subscriptionService service.ISubscriptionService) ISubscriptionController {
	return &subscriptionController{
		subscriptionService: subscriptionService,
	}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/subscriptions", jwtMiddleware)
	h.Get("", c.List)
	h.Post("expiry-sweep", serverutils.RequireRole(entity.UserRoleAdmin), c.SweepExpired)
	h.Get(":id", c.Show)
}

// List returns the tenant's subscriptions with reconciled status
// @Summary List subscriptions
// @Tags Subscriptions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} []dto.SubscriptionResponse
// @Router /api/subscriptions [get]
func (c *subscriptionController) List(ctx *fiber.Ctx) error {
	scope, err := serverutils.ScopeFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.subscriptionService.List(ctx.UserContext(), scope.AdminId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscriptions retrieved", res))
}

func (c *subscriptionController) Show(ctx *fiber.Ctx) error {
	scope, err := serverutils.ScopeFromCtx(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid subscription ID")
	}

	res, err := c.subscriptionService.Show(ctx.UserContext(), scope.AdminId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Subscription retrieved", res))
}

// SweepExpired runs the bulk expiry pass on demand
// @Summary Trigger expiry sweep
// @Tags Subscriptions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ExpirySweepResponse
// @Router /api/subscriptions/expiry-sweep [post]
func (c *subscriptionController) SweepExpired(ctx *fiber.Ctx) error {
	res, err := c.subscriptionService.SweepExpired(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Expiry sweep finished", res))
}
