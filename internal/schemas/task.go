package schemas

import (
	"strconv"
	"strings"
	"time"

	"github.com/mizuki-dev/project-management-api/internal/models"
)

const (
	msgStatusOneOf = "Must be one of: todo, in_progress, done, canceled."
	msgDueDatePast = "Due date cannot be set in the past."
	dueDateLayout  = "2006-01-02"
)

// TaskInput holds the validated fields of a task payload. The *Set flags
// distinguish "field absent" from "field explicitly set to null".
type TaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *models.TaskStatus
	DueDate        *time.Time
	DueDateSet     bool
	AssignedTo     *uint
	AssignedToSet  bool
}

// LoadTask validates a raw task payload. project_id is taken from the URL,
// never the body. On full loads a missing status defaults to todo.
func LoadTask(payload map[string]any, partial bool) (*TaskInput, error) {
	fe := fieldErrors{}
	input := &TaskInput{}

	input.Title = loadString(payload, "title", !partial, fe)
	input.Description, input.DescriptionSet = loadNullableText(payload, "description", fe)
	input.Status = loadStatus(payload, partial, fe)
	input.DueDate, input.DueDateSet = loadDueDate(payload, fe)
	input.AssignedTo, input.AssignedToSet = loadAssignedTo(payload, fe)

	if err := fe.asError(); err != nil {
		return nil, err
	}
	return input, nil
}

func loadStatus(payload map[string]any, partial bool, fe fieldErrors) *models.TaskStatus {
	raw, present := payload["status"]
	if !present {
		if partial {
			return nil
		}
		status := models.TaskStatusTodo
		return &status
	}
	value, ok := raw.(string)
	if !ok {
		fe.add("status", msgNotString)
		return nil
	}
	status := models.TaskStatus(value)
	if !status.Valid() {
		fe.add("status", msgStatusOneOf)
		return nil
	}
	return &status
}

// loadDueDate normalises blank strings to absent and rejects past dates.
func loadDueDate(payload map[string]any, fe fieldErrors) (*time.Time, bool) {
	raw, present := payload["due_date"]
	if !present {
		return nil, false
	}
	if raw == nil {
		return nil, true
	}
	value, ok := raw.(string)
	if !ok {
		fe.add("due_date", msgNotDate)
		return nil, true
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, true
	}
	parsed, err := time.ParseInLocation(dueDateLayout, value, time.Local)
	if err != nil {
		fe.add("due_date", msgNotDate)
		return nil, true
	}
	if parsed.Before(Today()) {
		fe.add("due_date", msgDueDatePast)
		return nil, true
	}
	return &parsed, true
}

func loadAssignedTo(payload map[string]any, fe fieldErrors) (*uint, bool) {
	raw, present := payload["assigned_to"]
	if !present {
		return nil, false
	}
	switch value := raw.(type) {
	case nil:
		return nil, true
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil, true
		}
		parsed, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil {
			fe.add("assigned_to", msgNotInteger)
			return nil, true
		}
		id := uint(parsed)
		return &id, true
	case float64:
		if value < 0 || value != float64(int64(value)) {
			fe.add("assigned_to", msgNotInteger)
			return nil, true
		}
		id := uint(value)
		return &id, true
	default:
		fe.add("assigned_to", msgNotInteger)
		return nil, true
	}
}

// Today returns midnight of the current local date, the cutoff for due-date
// validation.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
