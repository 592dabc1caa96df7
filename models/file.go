package models

import "time"

// FileAsset is upload metadata only; the bytes live with the storage
// collaborator under Path.
type FileAsset struct {
	ID         int64     `json:"id" bson:"_id"`
	ProjectID  int64     `json:"projectId" bson:"projectId"`
	Filename   string    `json:"filename" bson:"filename"`
	Size       int64     `json:"size" bson:"size"`
	Path       string    `json:"path" bson:"path"`
	UploadedBy int64     `json:"uploadedBy" bson:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
