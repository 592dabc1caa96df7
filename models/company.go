package models

import "time"

type Company struct {
	ID        int64     `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Country   string    `json:"country" bson:"country"`
	Notes     string    `json:"notes" bson:"notes"`
	CreatedBy int64     `json:"createdBy" bson:"createdBy"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// CompanyPatch carries a partial update. A nil field means "leave the
// stored value as it is"; there is no way to clear a field through a patch.
type CompanyPatch struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
	Notes   *string `json:"notes"`
}

func (p CompanyPatch) Apply(c *Company) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Country != nil {
		c.Country = *p.Country
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
}
