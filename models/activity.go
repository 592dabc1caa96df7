package models

import "time"

type ObjectType string

const (
	ObjectProject ObjectType = "project"
	ObjectTask    ObjectType = "task"
	ObjectComment ObjectType = "comment"
	ObjectFile    ObjectType = "file"
	ObjectCompany ObjectType = "company"
)

// Activity is one append-only audit row. Rows are never updated or
// deleted, and the feed is readable by any authenticated user.
type Activity struct {
	ID         int64      `json:"id" bson:"_id"`
	ActorID    int64      `json:"actorId" bson:"actorId"`
	Verb       string     `json:"verb" bson:"verb"`
	ObjectType ObjectType `json:"objectType" bson:"objectType"`
	ObjectID   int64      `json:"objectId" bson:"objectId"`
	ProjectID  *int64     `json:"projectId,omitempty" bson:"projectId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt" bson:"createdAt"`
}
