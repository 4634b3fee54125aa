package domain

import (
	"math"
	"time"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxOffset bounds (page-1)*limit so the skip fits every store.
	MaxOffset = math.MaxInt32

	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          string
	Title       string
	Description *string
	Completed   bool
	Priority    TaskPriority
	DueDate     *time.Time
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy reports whether userID is the recorded owner of the task.
func (t Task) IsOwnedBy(userID string) bool {
	return userID != "" && t.OwnerID == userID
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Completed   bool
	Priority    TaskPriority
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial update. Nil pointers leave the field
// untouched; DescriptionSet/DueDateSet with a nil value clear the field.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Completed      *bool
	Priority       *TaskPriority
	DueDate        *time.Time
	DueDateSet     bool
}

func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil &&
		!in.DescriptionSet &&
		in.Completed == nil &&
		in.Priority == nil &&
		!in.DueDateSet
}

type TaskFilter struct {
	Completed *bool
	Priority  *TaskPriority
}

type PageRequest struct {
	Page  int
	Limit int
}

// Normalize replaces out-of-range values with the defaults.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if maxPage := p.MaxPage(); p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

// MaxPage is the highest page whose offset stays within MaxOffset.
func (p PageRequest) MaxPage() int {
	if p.Limit < 1 {
		return MaxOffset
	}
	return MaxOffset/p.Limit + 1
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	CurrentPage int
	TotalPages  int
	Count       int
	TotalItems  int64
}

func NewPagination(page PageRequest, count int, totalItems int64) Pagination {
	totalPages := 0
	if page.Limit > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(page.Limit)))
	}

	return Pagination{
		CurrentPage: page.Page,
		TotalPages:  totalPages,
		Count:       count,
		TotalItems:  totalItems,
	}
}

type TaskPage struct {
	Tasks      []Task
	Pagination Pagination
}
