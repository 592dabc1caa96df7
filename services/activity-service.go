package services

import (
	"context"

	"github.com/flalji123/commodify-backend/models"
	"github.com/flalji123/commodify-backend/repositories"
)

// DefaultActivityLimit caps the feed when the caller does not ask for a
// specific page size.
const DefaultActivityLimit = 50

type ActivityService struct {
	Store repositories.Store
}

func NewActivityService(store repositories.Store) *ActivityService {
	return &ActivityService{Store: store}
}

// Record appends one audit row. It is always called inside the transaction
// of the mutation it describes, so a failed append fails the mutation too.
func (s *ActivityService) Record(ctx context.Context, actorID int64, verb string, objectType models.ObjectType, objectID int64, projectID *int64) error {
	_, err := s.Store.AppendActivity(ctx, models.Activity{
		ActorID:    actorID,
		Verb:       verb,
		ObjectType: objectType,
		ObjectID:   objectID,
		ProjectID:  projectID,
	})
	return err
}

// ListRecent is deliberately unscoped: any authenticated user sees the
// whole feed.
func (s *ActivityService) ListRecent(ctx context.Context, limit int64) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return s.Store.ListRecentActivities(ctx, limit)
}
