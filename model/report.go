package model

import (
	"time"
)

type Category string

const (
	CategoryEvent  Category = "event"
	CategoryHazard          = "hazard"
	CategoryLost            = "lost"
	CategoryFound           = "found"
	CategoryOther           = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryEvent, CategoryHazard, CategoryLost, CategoryFound, CategoryOther:
		return true
	}
	return false
}

// Report is the parent row for every submission. Category is fixed at
// creation; the matching detail row (if any) references Id.
type Report struct {
	Id          int64     `db:"id" json:"id"`
	UserId      string    `db:"user_id" json:"userId"`
	Category    Category  `db:"category" json:"category"`
	Description string    `db:"description" json:"description"`
	Location    string    `db:"location" json:"location"` // "(lat,lng)"
	ImageUrl    string    `db:"image_url" json:"imageUrl,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type EventDetail struct {
	ReportId int64     `db:"report_id" json:"-"`
	Subtype  string    `db:"subtype" json:"subtype"`
	StartsAt time.Time `db:"starts_at" json:"startsAt"`
}

type HazardDetail struct {
	ReportId int64  `db:"report_id" json:"-"`
	Subtype  string `db:"subtype" json:"subtype"`
}

type LostItemDetail struct {
	ReportId    int64  `db:"report_id" json:"-"`
	Subtype     string `db:"subtype" json:"subtype"`
	ContactInfo string `db:"contact_info" json:"contactInfo"`
}

type FoundItemDetail struct {
	ReportId    int64  `db:"report_id" json:"-"`
	Subtype     string `db:"subtype" json:"subtype"`
	ContactInfo string `db:"contact_info" json:"contactInfo"`
}

// ReportWithDetail carries the parent row plus whichever detail variant
// matches its category. At most one of the detail fields is set.
type ReportWithDetail struct {
	*Report
	Event  *EventDetail     `json:"event,omitempty"`
	Hazard *HazardDetail    `json:"hazard,omitempty"`
	Lost   *LostItemDetail  `json:"lost,omitempty"`
	Found  *FoundItemDetail `json:"found,omitempty"`
}
