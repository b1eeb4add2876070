package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dkravets/taskkeeper/internal/common"
	"github.com/dkravets/taskkeeper/internal/server/models"
	"github.com/dkravets/taskkeeper/internal/server/repositories/tasks"
)

type TaskService struct {
	repo tasks.Repository
}

func NewTaskService(repo tasks.Repository) *TaskService {
	return &TaskService{repo: repo}
}

// TaskPatch carries a partial update. Nil fields keep their stored values.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
}

// List returns the owner's tasks, newest first. No match is an empty slice,
// never an error.
func (s *TaskService) List(ctx context.Context, ownerID string, filter tasks.Filter) ([]*models.Task, error) {
	result, err := s.repo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return result, nil
}

// Create stores a new task owned by ownerID. The title is required; a missing
// status defaults to todo; anything outside the closed set is rejected before
// the store is touched.
func (s *TaskService) Create(ctx context.Context, ownerID, title, description, status string) (*models.Task, error) {

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	st := models.StatusTodo
	if status != "" {
		parsed, err := models.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}

	task := &models.Task{
		UserID:      ownerID,
		Title:       title,
		Description: description,
		Status:      st,
	}

	task, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return task, nil
}

// Update applies a partial update to an owned task. A missing id is
// common.ErrorNotFound; an existing task owned by someone else is
// common.ErrorForbidden and is never mutated. Validation runs before the
// store write, so a rejected patch leaves the record untouched.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, patch TaskPatch) (*models.Task, error) {

	task, err := s.getOwned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
		}
		task.Title = title
	}

	if patch.Description != nil {
		task.Description = *patch.Description
	}

	if patch.Status != nil {
		st, err := models.ParseStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		task.Status = st
	}

	task, err = s.repo.Update(ctx, task)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return task, nil
}

// Delete removes an owned task permanently.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {

	if _, err := s.getOwned(ctx, ownerID, taskID); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return nil
}

// getOwned resolves taskID and enforces the ownership check. Existence and
// ownership failures stay distinct: a missing id is not found, someone
// else's id is forbidden.
func (s *TaskService) getOwned(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if task.UserID != ownerID {
		return nil, common.ErrorForbidden
	}

	return task, nil
}
