package models

import "time"

type User struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Designation string    `bson:"designation" json:"designation"`
	Level       Level     `bson:"level" json:"level"`
	Grade       string    `bson:"grade" json:"grade"`
	Dept        string    `bson:"dept" json:"dept"`
	Group       string    `bson:"group,omitempty" json:"group,omitempty"`
	EmpID       string    `bson:"empId" json:"empId"`
	Email       string    `bson:"email" json:"email"`
	Passcode    string    `bson:"passcode" json:"passcode,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
