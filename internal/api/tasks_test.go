package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"bountyboard/internal/domain"
	"bountyboard/internal/store"

	"github.com/shopspring/decimal"
)

func TestCreateTaskAction(t *testing.T) {
	s := store.New()
	r := newTestRouter(s)
	userID, token := seedUser(t, s, "alice", "alice@example.com")

	w := postForm(r, "/tasks", token, url.Values{
		"intent":      {"create-task"},
		"title":       {"Translate the landing page"},
		"description": {"Hindi and Tamil"},
		"amount":      {"250.50"},
		"expiryDate":  {"2030-01-31"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create-task status = %d, body %s", w.Code, w.Body.String())
	}
	tasks := s.Tasks.ListTasks()
	if len(tasks) != 1 {
		t.Fatalf("task count = %d, want 1", len(tasks))
	}
	task := tasks[0]
	if task.CreatorID != userID || task.Status != domain.TaskOpen {
		t.Fatalf("created task = %+v", task)
	}
	if !task.Amount.Equal(decimal.RequireFromString("250.50")) {
		t.Fatalf("amount = %s, want 250.50", task.Amount)
	}
	if task.ExpiryDate == nil {
		t.Fatalf("expiry date not set")
	}
}

func TestCreateTaskValidationErrors(t *testing.T) {
	s := store.New()
	r := newTestRouter(s)
	_, token := seedUser(t, s, "alice", "alice@example.com")

	for name, form := range map[string]url.Values{
		"empty title": {
			"intent": {"create-task"},
			"title":  {""},
			"amount": {"10"},
		},
		"bad amount": {
			"intent": {"create-task"},
			"title":  {"something"},
			"amount": {"ten"},
		},
		"negative amount": {
			"intent": {"create-task"},
			"title":  {"something"},
			"amount": {"-5"},
		},
		"bad expiry": {
			"intent":     {"create-task"},
			"title":      {"something"},
			"amount":     {"10"},
			"expiryDate": {"next week"},
		},
	} {
		if w := postForm(r, "/tasks", token, form); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", name, w.Code)
		}
	}
	if got := len(s.Tasks.ListTasks()); got != 0 {
		t.Fatalf("task count = %d after rejected posts, want 0", got)
	}
}

func TestSubmitTaskAction(t *testing.T) {
	s := store.New()
	r := newTestRouter(s)
	creatorID, _ := seedUser(t, s, "alice", "alice@example.com")
	workerID, workerToken := seedUser(t, s, "bob", "bob@example.com")

	task, err := s.Tasks.CreateTask(store.CreateTaskParams{
		CreatorID: creatorID,
		Title:     "Translate the landing page",
		Amount:    decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	w := postForm(r, "/tasks", workerToken, url.Values{
		"intent":  {"submit-task"},
		"taskId":  {task.TaskID},
		"content": {"done, see attached"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("submit-task status = %d, body %s", w.Code, w.Body.String())
	}
	subs := s.Tasks.ListSubmissionsByUser(workerID)
	if len(subs) != 1 || subs[0].TaskID != task.TaskID {
		t.Fatalf("submissions = %+v", subs)
	}
	// The task creator is notified about the submission.
	if n := s.Notifications.ListByUser(creatorID); len(n) != 1 {
		t.Fatalf("creator notification count = %d, want 1", len(n))
	}

	w = postForm(r, "/tasks", workerToken, url.Values{
		"intent": {"submit-task"},
		"taskId": {"missing"},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown task status = %d, want 404", w.Code)
	}
}

func TestUnknownIntentRejected(t *testing.T) {
	s := store.New()
	r := newTestRouter(s)
	_, token := seedUser(t, s, "alice", "alice@example.com")

	w := postForm(r, "/tasks", token, url.Values{"intent": {"steal-task"}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown intent status = %d, want 400", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "Invalid action" {
		t.Fatalf("error = %q, want %q", resp["error"], "Invalid action")
	}
}

func TestTaskBoardListing(t *testing.T) {
	s := store.New()
	r := newTestRouter(s)
	creatorID, _ := seedUser(t, s, "alice", "alice@example.com")
	workerID, workerToken := seedUser(t, s, "bob", "bob@example.com")

	task, _ := s.Tasks.CreateTask(store.CreateTaskParams{
		CreatorID: creatorID,
		Title:     "one",
		Amount:    decimal.NewFromInt(1),
	})
	if _, err := s.Tasks.SubmitTask(task.TaskID, workerID, "mine"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := s.Tasks.SubmitTask(task.TaskID, creatorID, "not mine"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	w := get(r, "/tasks", workerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("tasks status = %d", w.Code)
	}
	var resp struct {
		Tasks       []domain.Task           `json:"tasks"`
		Submissions []domain.TaskSubmission `json:"submissions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Tasks) != 1 {
		t.Fatalf("task count = %d, want 1", len(resp.Tasks))
	}
	// Only the caller's submissions come back.
	if len(resp.Submissions) != 1 || resp.Submissions[0].UserID != workerID {
		t.Fatalf("submissions = %+v", resp.Submissions)
	}
}
