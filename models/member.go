package models

import "time"

type MemberRole string

const (
	RoleAdmin   MemberRole = "Admin"
	RoleManager MemberRole = "Manager"
	RoleMember  MemberRole = "Member"
	RoleViewer  MemberRole = "Viewer"
)

// Member associates a user with a project. The role is informational in
// this version: all access stays scoped to the project owner, membership
// grants nothing.
type Member struct {
	ID        int64      `json:"id" bson:"_id"`
	ProjectID int64      `json:"projectId" bson:"projectId"`
	UserID    int64      `json:"userId" bson:"userId"`
	Role      MemberRole `json:"role" bson:"role"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
}

func (r MemberRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleMember, RoleViewer:
		return true
	}
	return false
}
