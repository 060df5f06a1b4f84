package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskflow/internal/auth"
	"taskflow/internal/model"
	"taskflow/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request. assignedUser defaults
// to the caller when omitted.
type CreateTaskRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Status       string `json:"status" validate:"omitempty,oneof=pending completed"`
	AssignedUser string `json:"assignedUser" validate:"omitempty,uuid"`
}

// UpdateTaskRequest represents a partial task update. Absent fields are left
// unchanged.
type UpdateTaskRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1"`
	Description  *string `json:"description"`
	Status       *string `json:"status" validate:"omitempty,oneof=pending completed"`
	AssignedUser *string `json:"assignedUser" validate:"omitempty,uuid"`
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task payload"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
	}

	var req CreateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskStatus(req.Status),
	}
	if req.AssignedUser != "" {
		// Tag validation guarantees the parse succeeds.
		in.AssignedUserID, _ = uuid.Parse(req.AssignedUser)
	}

	task, err := h.taskService.Create(c.Request().Context(), claims, in)
	if err != nil {
		return failErr(c, err)
	}

	return respond(c, http.StatusCreated, task)
}

// List godoc
// @Summary List visible tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
	}

	tasks, err := h.taskService.List(c.Request().Context(), claims)
	if err != nil {
		return failErr(c, err)
	}

	return respondList(c, tasks, len(tasks))
}

// Get godoc
// @Summary Get a task by id
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid task id")
	}

	task, err := h.taskService.Get(c.Request().Context(), claims, id)
	if err != nil {
		return failErr(c, err)
	}

	return respond(c, http.StatusOK, task)
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid task id")
	}

	var req UpdateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		in.Status = &status
	}
	if req.AssignedUser != nil {
		assignee, parseErr := uuid.Parse(*req.AssignedUser)
		if parseErr != nil {
			return fail(c, http.StatusBadRequest, "invalid assignee id")
		}
		in.AssignedUserID = &assignee
	}

	task, err := h.taskService.Update(c.Request().Context(), claims, id, in)
	if err != nil {
		return failErr(c, err)
	}

	return respond(c, http.StatusOK, task)
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Failure 403 {object} Response
// @Failure 404 {object} Response
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid task id")
	}

	if err := h.taskService.Delete(c.Request().Context(), claims, id); err != nil {
		return failErr(c, err)
	}

	return respondMessage(c, "task deleted successfully")
}
