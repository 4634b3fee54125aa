package mapper

import (
	"time"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

// TimeLayout renders instants as ISO-8601 with milliseconds in UTC.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		Title:     task.Title,
		Completed: task.Completed,
		Priority:  string(task.Priority),
		Owner:     task.OwnerID,
		CreatedAt: FormatTime(task.CreatedAt),
		UpdatedAt: FormatTime(task.UpdatedAt),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.DueDate != nil {
		value := FormatTime(*task.DueDate)
		item.DueDate = &value
	}

	return item
}

func ToTaskListData(page domain.TaskPage) dto.TaskListData {
	return dto.TaskListData{
		Tasks: ToTaskItems(page.Tasks),
		Pagination: dto.PaginationItem{
			CurrentPage: page.Pagination.CurrentPage,
			TotalPages:  page.Pagination.TotalPages,
			Count:       page.Pagination.Count,
			TotalItems:  page.Pagination.TotalItems,
		},
	}
}
