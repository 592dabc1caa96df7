package models

import "time"

// Comment lives under a task and is removed together with it.
type Comment struct {
	ID        int64     `json:"id" bson:"_id"`
	TaskID    int64     `json:"taskId" bson:"taskId"`
	Body      string    `json:"body" bson:"body"`
	CreatedBy int64     `json:"createdBy" bson:"createdBy"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
