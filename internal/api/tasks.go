package api

import (
	"net/http"
	"time"

	"bountyboard/internal/middleware"
	"bountyboard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TasksHandler returns the task board: every task plus the caller's own
// submissions. Expiry is enforced by the background sweep, not here, so
// expired tasks still show up with their status.
func TasksHandler(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		c.JSON(http.StatusOK, gin.H{
			"tasks":       s.Tasks.ListTasks(),
			"submissions": s.Tasks.ListSubmissionsByUser(userID),
		})
	}
}

// TaskActionHandler dispatches the task board form posts on the "intent"
// field. Unknown intents are rejected, not ignored.
func TaskActionHandler(s *store.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		switch c.PostForm("intent") {
		case "create-task":
			createTask(c, s, userID)
		case "submit-task":
			submitTask(c, s, userID)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		}
	}
}

func createTask(c *gin.Context, s *store.Stores, userID string) {
	amount, err := decimal.NewFromString(c.PostForm("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}
	var expiry *time.Time
	if v := c.PostForm("expiryDate"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expiry date"})
			return
		}
		expiry = &d
	}
	task, err := s.Tasks.CreateTask(store.CreateTaskParams{
		CreatorID:   userID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Link:        c.PostForm("link"),
		Amount:      amount,
		ExpiryDate:  expiry,
	})
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	logrus.WithFields(logrus.Fields{
		"task_id":    task.TaskID,
		"creator_id": userID,
		"amount":     task.Amount.String(),
	}).Info("Task created")
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func submitTask(c *gin.Context, s *store.Stores, userID string) {
	taskID := c.PostForm("taskId")
	sub, err := s.Tasks.SubmitTask(taskID, userID, c.PostForm("content"))
	if err != nil {
		c.JSON(storeErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	// Tell the task creator a submission arrived.
	if task, err := s.Tasks.GetTask(taskID); err == nil {
		s.Notifications.Create(task.CreatorID, "task",
			"New submission for task "+task.Title, sub.SubmissionID)
	}
	logrus.WithFields(logrus.Fields{
		"task_id":       taskID,
		"submission_id": sub.SubmissionID,
		"user_id":       userID,
	}).Info("Task submission received")
	c.JSON(http.StatusCreated, gin.H{"submission": sub})
}
