package models

import "time"

// Note je komentar na projektu.
type Note struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	ProjectID string    `bson:"projectId" json:"projectId"`
	Text      string    `bson:"text" json:"text"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
