package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task statuses.
const (
	TaskOpen       = "Open"
	TaskInProgress = "InProgress"
	TaskCompleted  = "Completed"
	TaskExpired    = "Expired"
)

// Submission statuses.
const (
	SubmissionSubmitted = "Submitted"
	SubmissionApproved  = "Approved"
	SubmissionRejected  = "Rejected"
)

// Task is a bounty posted by a user.
type Task struct {
	TaskID      string          `json:"taskId"`    // Primary identifier (uuid)
	CreatorID   string          `json:"creatorId"` // User who posted the bounty
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Link        string          `json:"link,omitempty"`
	Amount      decimal.Decimal `json:"amount"` // Bounty reward, positive
	Status      string          `json:"status"`
	ExpiryDate  *time.Time      `json:"expiryDate,omitempty"` // Nil means no expiry
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TaskSubmission is a user's answer to an open task.
type TaskSubmission struct {
	SubmissionID string     `json:"submissionId"` // Primary identifier (uuid)
	TaskID       string     `json:"taskId"`       // Task being answered
	UserID       string     `json:"userId"`       // Submitting user
	Content      string     `json:"content,omitempty"`
	IsClaimed    bool       `json:"isClaimed"` // Reward claimed by the submitter
	ClaimedAt    *time.Time `json:"claimedAt,omitempty"`
	Status       string     `json:"status"` // Submitted, Approved or Rejected
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
