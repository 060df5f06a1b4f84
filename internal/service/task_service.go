package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/auth"
	"taskflow/internal/cache"
	"taskflow/internal/errors"
	"taskflow/internal/metrics"
	"taskflow/internal/model"
	"taskflow/internal/repository"
)

const taskCacheTTL = 5 * time.Minute

// CreateTaskInput carries a validated task creation request. A nil assignee
// means "assign to the actor".
type CreateTaskInput struct {
	Title          string
	Description    string
	Status         model.TaskStatus
	AssignedUserID uuid.UUID
}

// UpdateTaskInput carries a partial update. Nil fields are left untouched.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Status         *model.TaskStatus
	AssignedUserID *uuid.UUID
}

// TaskService handles task operations, enforcing the ownership policy on
// every path. Existence is always resolved before ownership, so a missing
// task id yields "not found" even for actors who would not own it.
type TaskService interface {
	Create(ctx context.Context, actor *auth.Claims, in CreateTaskInput) (*model.Task, error)
	List(ctx context.Context, actor *auth.Claims) ([]model.Task, error)
	Get(ctx context.Context, actor *auth.Claims, id uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, actor *auth.Claims, id uuid.UUID, in UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, actor *auth.Claims, id uuid.UUID) error
}

type taskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	policy   TaskPolicy
	cache    *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, cache *cache.Client) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

func taskCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("task:%s", id)
}

// Create persists a new task. The effective assignee defaults to the actor;
// non-admins may not assign to anyone else.
func (s *taskService) Create(ctx context.Context, actor *auth.Claims, in CreateTaskInput) (*model.Task, error) {
	assignee := in.AssignedUserID
	if assignee == uuid.Nil {
		assignee = actor.UserID
	}

	if err := s.policy.CanCreate(actor, assignee); err != nil {
		metrics.PolicyDenials.WithLabelValues("create").Inc()
		return nil, err
	}

	if assignee != actor.UserID {
		if err := s.assigneeExists(ctx, assignee); err != nil {
			return nil, err
		}
	}

	status := in.Status
	if status == "" {
		status = model.StatusPending
	}

	task := &model.Task{
		ID:             uuid.New(),
		Title:          in.Title,
		Description:    in.Description,
		Status:         status,
		AssignedUserID: assignee,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	metrics.TasksCreated.Inc()

	// Reload so the response carries the populated assignee.
	return s.taskRepo.FindByID(ctx, task.ID)
}

// List returns tasks visible to the actor, newest first.
func (s *taskService) List(ctx context.Context, actor *auth.Claims) ([]model.Task, error) {
	ownerID, all := s.policy.ListScope(actor)
	if all {
		return s.taskRepo.ListAll(ctx)
	}
	return s.taskRepo.ListByOwner(ctx, ownerID)
}

// Get returns a single task if the actor may view it.
func (s *taskService) Get(ctx context.Context, actor *auth.Claims, id uuid.UUID) (*model.Task, error) {
	var cached model.Task
	if s.cache.GetJSON(ctx, taskCacheKey(id), &cached) {
		if err := s.policy.CanView(actor, &cached); err != nil {
			metrics.PolicyDenials.WithLabelValues("view").Inc()
			return nil, err
		}
		return &cached, nil
	}

	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanView(actor, task); err != nil {
		metrics.PolicyDenials.WithLabelValues("view").Inc()
		return nil, err
	}

	s.cache.SetJSON(ctx, taskCacheKey(id), task, taskCacheTTL)
	return task, nil
}

// Update applies a partial update if the actor may mutate the task.
// Reassignment by non-admins is refused even on tasks they own.
func (s *taskService) Update(ctx context.Context, actor *auth.Claims, id uuid.UUID, in UpdateTaskInput) (*model.Task, error) {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanUpdate(actor, task); err != nil {
		metrics.PolicyDenials.WithLabelValues("update").Inc()
		return nil, err
	}

	if in.AssignedUserID != nil {
		if err := s.policy.CanReassign(actor, *in.AssignedUserID); err != nil {
			metrics.PolicyDenials.WithLabelValues("reassign").Inc()
			return nil, err
		}
		if *in.AssignedUserID != task.AssignedUserID {
			if err := s.assigneeExists(ctx, *in.AssignedUserID); err != nil {
				return nil, err
			}
		}
		task.AssignedUserID = *in.AssignedUserID
	}
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}

	// Drop the stale relation so Save only writes the task row.
	task.AssignedUser = nil

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	_ = s.cache.Delete(ctx, taskCacheKey(id))

	return s.taskRepo.FindByID(ctx, id)
}

// Delete removes a task if the actor may delete it.
func (s *taskService) Delete(ctx context.Context, actor *auth.Claims, id uuid.UUID) error {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.policy.CanDelete(actor, task); err != nil {
		metrics.PolicyDenials.WithLabelValues("delete").Inc()
		return err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	_ = s.cache.Delete(ctx, taskCacheKey(id))
	return nil
}

func (s *taskService) findTask(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) assigneeExists(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return err
	}
	return nil
}
