package models

import "time"

type TaskStatus string

// Prelazi između statusa se ne validiraju; jedino concurrence potpis
// prebacuje povezani zadatak u "Done".
const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
	StatusOnHold     TaskStatus = "On Hold"
)

type Subtask struct {
	ID         string     `bson:"id" json:"id"`
	Title      string     `bson:"title" json:"title"`
	AssigneeID string     `bson:"assigneeId,omitempty" json:"assigneeId,omitempty"`
	Status     TaskStatus `bson:"status" json:"status"`
	DueDate    string     `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
}

type Task struct {
	ID                string     `bson:"_id,omitempty" json:"id"`
	ProjectID         string     `bson:"projectId" json:"projectId"`
	Title             string     `bson:"title" json:"title"`
	Description       string     `bson:"description" json:"description"`
	Priority          Priority   `bson:"priority" json:"priority"`
	Status            TaskStatus `bson:"status" json:"status"`
	DueDate           string     `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	AssignerID        string     `bson:"assignerId" json:"assignerId"`
	AssigneeIDs       []string   `bson:"assigneeIds" json:"assigneeIds"`
	AssigneeID        string     `bson:"assigneeId" json:"assigneeId"` // prvi iz liste, za starije čitaoce
	ConcurrenceID     string     `bson:"concurrenceId,omitempty" json:"concurrenceId,omitempty"`
	IsConcurrenceTask bool       `bson:"isConcurrenceTask" json:"isConcurrenceTask"`
	PDFData           string     `bson:"pdfData,omitempty" json:"pdfData,omitempty"`
	PDFName           string     `bson:"pdfName,omitempty" json:"pdfName,omitempty"`
	CreatedBy         string     `bson:"createdBy" json:"createdBy"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	Subtasks          []Subtask  `bson:"subtasks,omitempty" json:"subtasks,omitempty"`
}

func (t *Task) AssigneeList() []string {
	if len(t.AssigneeIDs) > 0 {
		return t.AssigneeIDs
	}
	if t.AssigneeID != "" {
		return []string{t.AssigneeID}
	}
	return nil
}

func (t *Task) IsAssignedTo(userID string) bool {
	for _, id := range t.AssigneeList() {
		if id == userID {
			return true
		}
	}
	return false
}

type TaskPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	DueDate     *string     `json:"dueDate,omitempty"`
	AssigneeIDs *[]string   `json:"assigneeIds,omitempty"`
	AssigneeID  *string     `json:"assigneeId,omitempty"`
	PDFData     *string     `json:"pdfData,omitempty"`
	PDFName     *string     `json:"pdfName,omitempty"`
}

func (t *Task) Apply(patch TaskPatch) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.PDFData != nil {
		t.PDFData = *patch.PDFData
	}
	if patch.PDFName != nil {
		t.PDFName = *patch.PDFName
	}
	t.AssigneeIDs, t.AssigneeID = deriveAssignees(t.AssigneeIDs, t.AssigneeID, patch.AssigneeIDs, patch.AssigneeID)
}
