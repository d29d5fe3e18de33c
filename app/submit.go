package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neighborly/neighborly-be/db"
	"github.com/neighborly/neighborly-be/geo"
	"github.com/neighborly/neighborly-be/model"
)

// ErrNoReportId means the parent insert reported success but vended no
// row id. Surfaced to callers the same way as a store error, kept
// distinguishable via errors.Is.
var ErrNoReportId = errors.New("report insert returned no id")

// Uploader turns a client-side image reference into a durable URL.
type Uploader interface {
	Upload(ctx context.Context, localRef string) (url string, err error)
}

type EventFields struct {
	Subtype   string    `json:"subtype"`
	Date      time.Time `json:"date"`
	TimeOfDay string    `json:"timeOfDay"` // "HH:MM"
}

type HazardFields struct {
	Subtype string `json:"subtype"`
}

// ItemFields is shared by the lost and found categories.
type ItemFields struct {
	Subtype     string `json:"subtype"`
	ContactInfo string `json:"contactInfo"`
}

// SubmitReq is the tagged-variant submission input: Category selects
// which of the field groups must be present.
type SubmitReq struct {
	Category    model.Category `json:"category"`
	Description string         `json:"description"`
	Location    string         `json:"location"` // "lat,lng"
	LocalImage  string         `json:"image,omitempty"`

	Event  *EventFields  `json:"event,omitempty"`
	Hazard *HazardFields `json:"hazard,omitempty"`
	Item   *ItemFields   `json:"item,omitempty"`
}

func (req *SubmitReq) validate() error {
	if !req.Category.Valid() {
		return fmt.Errorf("unknown category %q", req.Category)
	}
	switch req.Category {
	case model.CategoryEvent:
		if req.Event == nil {
			return errors.New("event fields required")
		}
	case model.CategoryHazard:
		if req.Hazard == nil {
			return errors.New("hazard fields required")
		}
	case model.CategoryLost, model.CategoryFound:
		if req.Item == nil {
			return errors.New("item fields required")
		}
	}
	return nil
}

type Submitter struct {
	db       db.ReportDatabase
	uploader Uploader
}

func NewSubmitter(db db.ReportDatabase, uploader Uploader) *Submitter {
	return &Submitter{db: db, uploader: uploader}
}

// Submit records one report plus its category detail as two dependent
// inserts. The store exposes no cross-table transaction, so the pair is
// an explicit two-step protocol: parent first, detail second, each
// attempted exactly once. A detail failure leaves the parent row behind
// with no compensation (see DESIGN.md). No panic or raw store error
// escapes; callers get the report id or a single error.
func (s *Submitter) Submit(ctx context.Context, userId string, req *SubmitReq) (int64, error) {
	if err := req.validate(); err != nil {
		return 0, err
	}

	imageUrl := ""
	if req.LocalImage != "" {
		url, err := s.uploader.Upload(ctx, req.LocalImage)
		if err != nil {
			return 0, fmt.Errorf("image upload: %w", err)
		}
		imageUrl = url
	}

	reportId, err := s.db.CreateReport(ctx, &db.CreateReport{
		UserId:      userId,
		Category:    req.Category,
		Description: req.Description,
		Location:    geo.ParsePoint(req.Location),
		ImageUrl:    imageUrl,
	})
	if err != nil {
		return 0, err
	}
	if reportId == 0 {
		return 0, ErrNoReportId
	}

	switch req.Category {
	case model.CategoryEvent:
		err = s.db.CreateEventDetail(ctx, &db.CreateEventDetail{
			ReportId: reportId,
			Subtype:  req.Event.Subtype,
			StartsAt: composeEventTime(req.Event.Date, req.Event.TimeOfDay),
		})
	case model.CategoryHazard:
		err = s.db.CreateHazardDetail(ctx, &db.CreateHazardDetail{
			ReportId: reportId,
			Subtype:  req.Hazard.Subtype,
		})
	case model.CategoryLost:
		err = s.db.CreateLostItemDetail(ctx, itemDetail(reportId, req.Item))
	case model.CategoryFound:
		err = s.db.CreateFoundItemDetail(ctx, itemDetail(reportId, req.Item))
	case model.CategoryOther:
		// free-form reports have no detail table
	}
	if err != nil {
		return 0, err
	}
	return reportId, nil
}

func itemDetail(reportId int64, fields *ItemFields) *db.CreateItemDetail {
	return &db.CreateItemDetail{
		ReportId:    reportId,
		Subtype:     fields.Subtype,
		ContactInfo: fields.ContactInfo,
	}
}

// composeEventTime overwrites the hour and minute of date with the
// components of the "HH:MM" time-of-day string. An unparseable time of
// day leaves the date untouched.
func composeEventTime(date time.Time, timeOfDay string) time.Time {
	parsed, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location())
}
