package utils

import (
	"time"

	"lce-project/backend/models"
)

// Datumi iz UI-ja dolaze kao "2006-01-02"; starije vrednosti mogu biti RFC3339.
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatDate vraća datum u obliku "02 Jan 2006" ili crtu kada nema vrednosti.
func FormatDate(value string) string {
	t, ok := parseDate(value)
	if !ok {
		return "—"
	}
	return t.Format("02 Jan 2006")
}

func FormatDateTime(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("02 Jan 2006 15:04")
}

func IsOverdue(dueDate string) bool {
	t, ok := parseDate(dueDate)
	if !ok {
		return false
	}
	return t.Before(time.Now())
}

var priorityColors = map[models.Priority]string{
	models.PriorityHigh:   "#e74c3c",
	models.PriorityMedium: "#f39c12",
	models.PriorityLow:    "#27ae60",
}

func PriorityColor(p models.Priority) string {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return "#95a5a6"
}

var statusColors = map[string]string{
	string(models.ProjectNotStarted): "#95a5a6",
	string(models.ProjectInProgress): "#3498db",
	string(models.ProjectCompleted):  "#27ae60",
	string(models.StatusToDo):        "#95a5a6",
	string(models.StatusDone):        "#27ae60",
	string(models.StatusOnHold):      "#e67e22",
}

func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return "#95a5a6"
}
