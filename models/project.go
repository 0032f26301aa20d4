package models

import "time"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "Not Started"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectCompleted  ProjectStatus = "Completed"
)

type Project struct {
	ID              string        `bson:"_id,omitempty" json:"id"`
	Title           string        `bson:"title" json:"title"`
	Description     string        `bson:"description" json:"description"`
	Priority        Priority      `bson:"priority" json:"priority"`
	Status          ProjectStatus `bson:"status" json:"status"`
	DueDate         string        `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	ScopeLink       string        `bson:"scopeLink,omitempty" json:"scopeLink,omitempty"`
	AssignerID      string        `bson:"assignerId" json:"assignerId"`
	AssigneeIDs     []string      `bson:"assigneeIds" json:"assigneeIds"`
	AssigneeID      string        `bson:"assigneeId" json:"assigneeId"` // prvi iz liste, za starije čitaoce
	ParentProjectID string        `bson:"parentProjectId,omitempty" json:"parentProjectId,omitempty"`
	CreatedBy       string        `bson:"createdBy" json:"createdBy"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       *time.Time    `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// AssigneeList vraća listu zaduženih, uz fallback na staro pojedinačno polje.
func (p *Project) AssigneeList() []string {
	if len(p.AssigneeIDs) > 0 {
		return p.AssigneeIDs
	}
	if p.AssigneeID != "" {
		return []string{p.AssigneeID}
	}
	return nil
}

func (p *Project) IsAssignedTo(userID string) bool {
	for _, id := range p.AssigneeList() {
		if id == userID {
			return true
		}
	}
	return false
}

type ProjectPatch struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Priority    *Priority      `json:"priority,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
	DueDate     *string        `json:"dueDate,omitempty"`
	ScopeLink   *string        `json:"scopeLink,omitempty"`
	AssigneeIDs *[]string      `json:"assigneeIds,omitempty"`
	AssigneeID  *string        `json:"assigneeId,omitempty"`
}

// Apply spaja izmene na postojeći projekat i održava oba assignee polja usklađenim.
func (p *Project) Apply(patch ProjectPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Priority != nil {
		p.Priority = *patch.Priority
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.DueDate != nil {
		p.DueDate = *patch.DueDate
	}
	if patch.ScopeLink != nil {
		p.ScopeLink = *patch.ScopeLink
	}
	p.AssigneeIDs, p.AssigneeID = deriveAssignees(p.AssigneeIDs, p.AssigneeID, patch.AssigneeIDs, patch.AssigneeID)
}

// deriveAssignees primenjuje dvosmerno izvođenje assigneeIds <-> assigneeId.
// Primena dva puta daje isti rezultat.
func deriveAssignees(curIDs []string, curID string, patchIDs *[]string, patchID *string) ([]string, string) {
	switch {
	case patchIDs != nil:
		ids := *patchIDs
		if len(ids) == 0 {
			return []string{}, ""
		}
		return ids, ids[0]
	case patchID != nil:
		if *patchID == "" {
			return []string{}, ""
		}
		return []string{*patchID}, *patchID
	default:
		return curIDs, curID
	}
}

// NormalizeAssignees usklađuje polja pri kreiranju zapisa: lista ima prednost,
// staro pojedinačno polje se izvodi iz nje (ili obrnuto).
func NormalizeAssignees(ids []string, single string) ([]string, string) {
	if len(ids) == 0 && single != "" {
		ids = []string{single}
	}
	if len(ids) == 0 {
		return []string{}, ""
	}
	return ids, ids[0]
}
