package controller

import (
	"ai-studyplanner-be/internal/dto"
	"ai-studyplanner-be/internal/pkg/serverutils"
	"ai-studyplanner-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPlannerController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	ResetConversation(ctx *fiber.Ctx) error
	BuildPlan(ctx *fiber.Ctx) error
	Reallocate(ctx *fiber.Ctx) error
	UpdateTaskStatus(ctx *fiber.Ctx) error
	ListSchedules(ctx *fiber.Ctx) error
	ListTasks(ctx *fiber.Ctx) error
}

type plannerController struct {
	plannerService  service.IPlannerService
	scheduleService service.IScheduleService
}

func NewPlannerController(
	plannerService service.IPlannerService,
	scheduleService service.IScheduleService,
) IPlannerController {
	return &plannerController{
		plannerService:  plannerService,
		scheduleService: scheduleService,
	}
}

func (c *plannerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/planner/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("chat", c.Chat)
	h.Post("conversation/reset", c.ResetConversation)
	h.Post("plan", c.BuildPlan)
	h.Post("reallocate", c.Reallocate)
	h.Get("schedule", c.ListSchedules)
	h.Get("schedule/:id/tasks", c.ListTasks)
	h.Put("task/:id/status", c.UpdateTaskStatus)
}

func (c *plannerController) Chat(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.plannerService.Chat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *plannerController) ResetConversation(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.plannerService.ResetConversation(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset conversation", res))
}

func (c *plannerController) BuildPlan(ctx *fiber.Ctx) error {
	var req dto.PlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.scheduleService.BuildPlan(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success build plan", res))
}

func (c *plannerController) Reallocate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ReallocateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.scheduleService.ReallocateMissed(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reallocate missed tasks", res))
}

func (c *plannerController) UpdateTaskStatus(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid task id")
	}

	var req dto.UpdateTaskStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.scheduleService.UpdateTaskStatus(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update task status", res))
}

func (c *plannerController) ListSchedules(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.scheduleService.ListSchedules(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list schedules", res))
}

func (c *plannerController) ListTasks(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	scheduleId, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid schedule id")
	}

	res, err := c.scheduleService.ListTasks(ctx.Context(), userId, scheduleId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list tasks", res))
}
