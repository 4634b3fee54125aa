package dto

type TaskItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   bool    `json:"completed"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"dueDate,omitempty"`
	Owner       string  `json:"owner"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type PaginationItem struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Count       int   `json:"count"`
	TotalItems  int64 `json:"totalItems"`
}

type TaskData struct {
	Task TaskItem `json:"task"`
}

type TaskListData struct {
	Tasks      []TaskItem     `json:"tasks"`
	Pagination PaginationItem `json:"pagination"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,notblank,max=100"`
	Description *string `json:"description" binding:"omitnil,max=500"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority" binding:"omitnil,oneof=low medium high"`
	DueDate     *string `json:"dueDate" binding:"omitnil,iso8601"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitnil,notblank,max=100"`
	Description *string `json:"description" binding:"omitnil,max=500"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority" binding:"omitnil,oneof=low medium high"`
	DueDate     *string `json:"dueDate" binding:"omitnil,iso8601"`
}

// ListTasksQuery keeps raw strings so each value is reported as a field error.
type ListTasksQuery struct {
	Completed *string `form:"completed" binding:"omitnil,oneof=true false"`
	Priority  *string `form:"priority" binding:"omitnil,oneof=low medium high"`
	Page      *string `form:"page" binding:"omitnil,number"`
	Limit     *string `form:"limit" binding:"omitnil,number"`
}

type TaskIDParam struct {
	ID string `uri:"id" binding:"required,objectid"`
}
