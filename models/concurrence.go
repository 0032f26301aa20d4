package models

import "time"

// Reviewer je snimak potpisnika fiksiran pri kreiranju concurrence zapisa.
type Reviewer struct {
	UserID   string     `bson:"userId" json:"userId"`
	Signed   bool       `bson:"signed" json:"signed"`
	SignedAt *time.Time `bson:"signedAt,omitempty" json:"signedAt,omitempty"`
}

type HODSignOff struct {
	Signed   bool       `bson:"signed" json:"signed"`
	SignedBy string     `bson:"signedBy,omitempty" json:"signedBy,omitempty"`
	SignedAt *time.Time `bson:"signedAt,omitempty" json:"signedAt,omitempty"`
}

// Concurrence prati životni ciklus odobravanja crteža: potpisi recenzenata,
// HOD odobrenje i slanje klijentu.
type Concurrence struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	ProjectID     string     `bson:"projectId" json:"projectId"`
	DrawingTitle  string     `bson:"drawingTitle" json:"drawingTitle"`
	Description   string     `bson:"description" json:"description"`
	Reviewers     []Reviewer `bson:"reviewers" json:"reviewers"`
	HODSignOff    HODSignOff `bson:"hodSignOff" json:"hodSignOff"`
	SentToClient  bool       `bson:"sentToClient" json:"sentToClient"`
	SentAt        *time.Time `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	LinkedTaskID  string     `bson:"linkedTaskId,omitempty" json:"linkedTaskId,omitempty"`
	LinkedPDFData string     `bson:"linkedPdfData,omitempty" json:"linkedPdfData,omitempty"`
	LinkedPDFName string     `bson:"linkedPdfName,omitempty" json:"linkedPdfName,omitempty"`
	CreatedBy     string     `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// AllSigned je tačno samo kada lista recenzenata nije prazna i svi su potpisali.
func (c *Concurrence) AllSigned() bool {
	if len(c.Reviewers) == 0 {
		return false
	}
	for _, r := range c.Reviewers {
		if !r.Signed {
			return false
		}
	}
	return true
}

type ConcurrencePatch struct {
	DrawingTitle  *string `json:"drawingTitle,omitempty"`
	Description   *string `json:"description,omitempty"`
	LinkedTaskID  *string `json:"linkedTaskId,omitempty"`
	LinkedPDFData *string `json:"linkedPdfData,omitempty"`
	LinkedPDFName *string `json:"linkedPdfName,omitempty"`
}

func (c *Concurrence) Apply(patch ConcurrencePatch) {
	if patch.DrawingTitle != nil {
		c.DrawingTitle = *patch.DrawingTitle
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.LinkedTaskID != nil {
		c.LinkedTaskID = *patch.LinkedTaskID
	}
	if patch.LinkedPDFData != nil {
		c.LinkedPDFData = *patch.LinkedPDFData
	}
	if patch.LinkedPDFName != nil {
		c.LinkedPDFName = *patch.LinkedPDFName
	}
}
