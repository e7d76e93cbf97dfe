package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"bountyboard/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaskStore owns the bounty board: tasks and their submissions.
type TaskStore struct {
	mu          sync.RWMutex
	tasks       []*domain.Task // insertion order
	taskByID    map[string]*domain.Task
	submissions []*domain.TaskSubmission // insertion order
}

// CreateTaskParams carries a new bounty. Title and a positive amount are
// required; the rest is optional.
type CreateTaskParams struct {
	CreatorID   string
	Title       string
	Description string
	Link        string
	Amount      decimal.Decimal
	ExpiryDate  *time.Time
}

func NewTaskStore() *TaskStore {
	return &TaskStore{taskByID: make(map[string]*domain.Task)}
}

// CreateTask posts a new Open bounty. Fails with ErrValidation on an empty
// title or a non-positive amount; nothing is stored on failure.
func (s *TaskStore) CreateTask(p CreateTaskParams) (domain.Task, error) {
	if strings.TrimSpace(p.Title) == "" {
		return domain.Task{}, fmt.Errorf("empty title: %w", ErrValidation)
	}
	if !p.Amount.IsPositive() {
		return domain.Task{}, fmt.Errorf("amount must be positive: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	t := &domain.Task{
		TaskID:      uuid.NewString(),
		CreatorID:   p.CreatorID,
		Title:       p.Title,
		Description: p.Description,
		Link:        p.Link,
		Amount:      p.Amount,
		Status:      domain.TaskOpen,
		ExpiryDate:  p.ExpiryDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = append(s.tasks, t)
	s.taskByID[t.TaskID] = t
	return *t, nil
}

// SubmitTask files a submission against an Open task. Fails with ErrNotFound
// for an unknown task and ErrValidation when the task is no longer open.
func (s *TaskStore) SubmitTask(taskID, userID, content string) (domain.TaskSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.taskByID[taskID]
	if !ok {
		return domain.TaskSubmission{}, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	if t.Status != domain.TaskOpen {
		return domain.TaskSubmission{}, fmt.Errorf("task %s is %s: %w", taskID, t.Status, ErrValidation)
	}
	now := time.Now()
	sub := &domain.TaskSubmission{
		SubmissionID: uuid.NewString(),
		TaskID:       taskID,
		UserID:       userID,
		Content:      content,
		Status:       domain.SubmissionSubmitted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.submissions = append(s.submissions, sub)
	return *sub, nil
}

// ListTasks returns every task in insertion order, regardless of status.
func (s *TaskStore) ListTasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, *t)
	}
	return out
}

// GetTask resolves a single task.
func (s *TaskStore) GetTask(taskID string) (domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.taskByID[taskID]
	if !ok {
		return domain.Task{}, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	return *t, nil
}

// ListSubmissionsByUser returns the user's submissions across all tasks in
// insertion order.
func (s *TaskStore) ListSubmissionsByUser(userID string) []domain.TaskSubmission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.TaskSubmission
	for _, sub := range s.submissions {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	return out
}

// ExpireTasks flips Open tasks whose expiry date has passed to Expired and
// returns how many were flipped. Tasks without an expiry date never expire.
func (s *TaskStore) ExpireTasks(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	expired := 0
	for _, t := range s.tasks {
		if t.Status == domain.TaskOpen && t.ExpiryDate != nil && t.ExpiryDate.Before(now) {
			t.Status = domain.TaskExpired
			t.UpdatedAt = now
			expired++
		}
	}
	return expired
}
