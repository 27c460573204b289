package controller

import (
	"crm-renewal-be/internal/dto"
	"crm-renewal-be/internal/pkg/serverutils"
	"crm-renewal-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReminderController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Find(ctx *fiber.Ctx) error
}

type reminderController struct {
	reminderService service.IReminderService
}

func NewReminderController(reminderService service.IReminderService) IReminderController {
	return &reminderController{
		reminderService: reminderService,
	}
}

func (c *reminderController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/reminders", jwtMiddleware)
	h.Get("", c.Find)
}

// Find lists active entitlements expiring inside the requested window
// @Summary List renewal reminders
// @Tags Reminders
// @Security BearerAuth
// @Produce json
// @Param timeWindow query string false "thisMonth|next15|next30|nextMonth|last15|last30|custom"
// @Success 200 {object} dto.ReminderListResponse
// @Router /api/reminders [get]
func (c *reminderController) Find(ctx *fiber.Ctx) error {
	scope, err := serverutils.ScopeFromCtx(ctx)
	if err != nil {
		return err
	}

	var query dto.ReminderQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.reminderService.Find(ctx.UserContext(), scope, &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Reminders retrieved", res))
}
