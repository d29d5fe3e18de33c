package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neighborly/neighborly-be/db"
	"github.com/neighborly/neighborly-be/geo"
	"github.com/neighborly/neighborly-be/model"
)

type fakeReportDB struct {
	db.ReportDatabase

	nextReportId    int64
	createReportErr error
	detailErr       error

	createReportCalls int
	detailCalls       int

	lastCreateReport *db.CreateReport
	lastEventDetail  *db.CreateEventDetail
	lastHazardDetail *db.CreateHazardDetail
	lastItemDetail   *db.CreateItemDetail
	lastItemTable    string
}

func (f *fakeReportDB) CreateReport(ctx context.Context, req *db.CreateReport) (int64, error) {
	f.createReportCalls++
	f.lastCreateReport = req
	if f.createReportErr != nil {
		return 0, f.createReportErr
	}
	return f.nextReportId, nil
}

func (f *fakeReportDB) CreateEventDetail(ctx context.Context, req *db.CreateEventDetail) error {
	f.detailCalls++
	f.lastEventDetail = req
	return f.detailErr
}

func (f *fakeReportDB) CreateHazardDetail(ctx context.Context, req *db.CreateHazardDetail) error {
	f.detailCalls++
	f.lastHazardDetail = req
	return f.detailErr
}

func (f *fakeReportDB) CreateLostItemDetail(ctx context.Context, req *db.CreateItemDetail) error {
	f.detailCalls++
	f.lastItemDetail = req
	f.lastItemTable = "lostitems"
	return f.detailErr
}

func (f *fakeReportDB) CreateFoundItemDetail(ctx context.Context, req *db.CreateItemDetail) error {
	f.detailCalls++
	f.lastItemDetail = req
	f.lastItemTable = "founditems"
	return f.detailErr
}

type fakeUploader struct {
	url   string
	err   error
	calls int
}

func (f *fakeUploader) Upload(ctx context.Context, localRef string) (string, error) {
	f.calls++
	return f.url, f.err
}

func submitReqForCategory(category model.Category) *SubmitReq {
	req := &SubmitReq{
		Category:    category,
		Description: "observed at the corner of 5th and Main",
		Location:    "40.7128,-74.006",
	}
	switch category {
	case model.CategoryEvent:
		req.Event = &EventFields{
			Subtype:   "block party",
			Date:      time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			TimeOfDay: "18:00",
		}
	case model.CategoryHazard:
		req.Hazard = &HazardFields{Subtype: "downed tree"}
	case model.CategoryLost, model.CategoryFound:
		req.Item = &ItemFields{Subtype: "keys", ContactInfo: "555-0100"}
	}
	return req
}

func TestSubmitSucceedsForEachCategory(t *testing.T) {
	categories := []model.Category{
		model.CategoryEvent,
		model.CategoryHazard,
		model.CategoryLost,
		model.CategoryFound,
	}
	for _, category := range categories {
		fake := &fakeReportDB{nextReportId: 1}
		submitter := NewSubmitter(fake, &fakeUploader{})

		id, err := submitter.Submit(context.Background(), "user-1", submitReqForCategory(category))
		if err != nil {
			t.Fatalf("Submit(%v) returned error: %v", category, err)
		}
		if id != 1 {
			t.Errorf("Submit(%v) returned id %v, want 1", category, id)
		}
		if fake.createReportCalls != 1 || fake.detailCalls != 1 {
			t.Errorf("Submit(%v) made %v parent and %v detail inserts, want 1 and 1",
				category, fake.createReportCalls, fake.detailCalls)
		}
	}
}

func TestSubmitOtherCategoryHasNoDetail(t *testing.T) {
	fake := &fakeReportDB{nextReportId: 1}
	submitter := NewSubmitter(fake, &fakeUploader{})

	if _, err := submitter.Submit(context.Background(), "user-1", submitReqForCategory(model.CategoryOther)); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if fake.detailCalls != 0 {
		t.Errorf("detail inserts = %v, want 0", fake.detailCalls)
	}
}

func TestSubmitParentInsertFailure(t *testing.T) {
	storeErr := errors.New("store rejected insert")
	fake := &fakeReportDB{createReportErr: storeErr}
	submitter := NewSubmitter(fake, &fakeUploader{})

	_, err := submitter.Submit(context.Background(), "user-1", submitReqForCategory(model.CategoryHazard))
	if !errors.Is(err, storeErr) {
		t.Fatalf("Submit returned %v, want the store error", err)
	}
	if fake.detailCalls != 0 {
		t.Errorf("detail insert attempted after parent failure")
	}
}

func TestSubmitNoReportId(t *testing.T) {
	fake := &fakeReportDB{nextReportId: 0}
	submitter := NewSubmitter(fake, &fakeUploader{})

	_, err := submitter.Submit(context.Background(), "user-1", submitReqForCategory(model.CategoryHazard))
	if !errors.Is(err, ErrNoReportId) {
		t.Fatalf("Submit returned %v, want ErrNoReportId", err)
	}
	if fake.detailCalls != 0 {
		t.Errorf("detail insert attempted without a report id")
	}
}

func TestSubmitDetailInsertFailureLeavesParent(t *testing.T) {
	detailErr := errors.New("detail insert failed")
	fake := &fakeReportDB{nextReportId: 1, detailErr: detailErr}
	submitter := NewSubmitter(fake, &fakeUploader{})

	_, err := submitter.Submit(context.Background(), "user-1", submitReqForCategory(model.CategoryEvent))
	if !errors.Is(err, detailErr) {
		t.Fatalf("Submit returned %v, want the detail error", err)
	}
	// the parent insert already happened; the orphan row is accepted
	if fake.createReportCalls != 1 {
		t.Errorf("parent insert calls = %v, want 1", fake.createReportCalls)
	}
}

func TestSubmitUploadFailureAbortsBeforeInserts(t *testing.T) {
	uploadErr := errors.New("upload rejected")
	fake := &fakeReportDB{nextReportId: 1}
	submitter := NewSubmitter(fake, &fakeUploader{err: uploadErr})

	req := submitReqForCategory(model.CategoryHazard)
	req.LocalImage = "file:///tmp/photo.jpg"

	_, err := submitter.Submit(context.Background(), "user-1", req)
	if !errors.Is(err, uploadErr) {
		t.Fatalf("Submit returned %v, want the upload error", err)
	}
	if fake.createReportCalls != 0 || fake.detailCalls != 0 {
		t.Errorf("inserts attempted after upload failure")
	}
}

func TestSubmitUploadedUrlReachesParentInsert(t *testing.T) {
	fake := &fakeReportDB{nextReportId: 1}
	uploader := &fakeUploader{url: "https://storage.example.com/reports/abc"}
	submitter := NewSubmitter(fake, uploader)

	req := submitReqForCategory(model.CategoryHazard)
	req.LocalImage = "file:///tmp/photo.jpg"

	if _, err := submitter.Submit(context.Background(), "user-1", req); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if uploader.calls != 1 {
		t.Errorf("upload calls = %v, want 1", uploader.calls)
	}
	if fake.lastCreateReport.ImageUrl != uploader.url {
		t.Errorf("parent insert carried image url %q, want %q", fake.lastCreateReport.ImageUrl, uploader.url)
	}
}

func TestSubmitNoImageSkipsUpload(t *testing.T) {
	fake := &fakeReportDB{nextReportId: 1}
	uploader := &fakeUploader{}
	submitter := NewSubmitter(fake, uploader)

	if _, err := submitter.Submit(context.Background(), "user-1", submitReqForCategory(model.CategoryHazard)); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if uploader.calls != 0 {
		t.Errorf("upload called for an imageless submission")
	}
	if fake.lastCreateReport.ImageUrl != "" {
		t.Errorf("parent insert carried image url %q, want empty", fake.lastCreateReport.ImageUrl)
	}
}

func TestSubmitEncodesLocation(t *testing.T) {
	fake := &fakeReportDB{nextReportId: 1}
	submitter := NewSubmitter(fake, &fakeUploader{})

	req := submitReqForCategory(model.CategoryHazard)
	req.Location = " 12.5 , -3.25 "

	if _, err := submitter.Submit(context.Background(), "user-1", req); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if want := (geo.Point{Lat: 12.5, Lng: -3.25}); fake.lastCreateReport.Location != want {
		t.Errorf("parent insert carried location %v, want %v", fake.lastCreateReport.Location, want)
	}
}

func TestSubmitMalformedLocationFallsBackToOrigin(t *testing.T) {
	fake := &fakeReportDB{nextReportId: 1}
	submitter := NewSubmitter(fake, &fakeUploader{})

	req := submitReqForCategory(model.CategoryHazard)
	req.Location = "somewhere downtown"

	if _, err := submitter.Submit(context.Background(), "user-1", req); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if fake.lastCreateReport.Location != (geo.Point{}) {
		t.Errorf("parent insert carried location %v, want origin", fake.lastCreateReport.Location)
	}
}

func TestSubmitComposesEventTime(t *testing.T) {
	fake := &fakeReportDB{nextReportId: 1}
	submitter := NewSubmitter(fake, &fakeUploader{})

	req := submitReqForCategory(model.CategoryEvent)
	req.Event.Date = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	req.Event.TimeOfDay = "14:30"

	if _, err := submitter.Submit(context.Background(), "user-1", req); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	startsAt := fake.lastEventDetail.StartsAt
	if startsAt.Year() != 2024 || startsAt.Month() != time.January || startsAt.Day() != 1 {
		t.Errorf("event date changed: %v", startsAt)
	}
	if startsAt.Hour() != 14 || startsAt.Minute() != 30 {
		t.Errorf("event time = %02d:%02d, want 14:30", startsAt.Hour(), startsAt.Minute())
	}
}

func TestSubmitRejectsMissingCategoryFields(t *testing.T) {
	fake := &fakeReportDB{nextReportId: 1}
	submitter := NewSubmitter(fake, &fakeUploader{})

	_, err := submitter.Submit(context.Background(), "user-1", &SubmitReq{
		Category:    model.CategoryEvent,
		Description: "missing the event fields",
		Location:    "1,2",
	})
	if err == nil {
		t.Fatal("Submit accepted an event submission without event fields")
	}
	if fake.createReportCalls != 0 {
		t.Errorf("parent insert attempted for an invalid request")
	}
}

func TestSubmitRejectsUnknownCategory(t *testing.T) {
	fake := &fakeReportDB{nextReportId: 1}
	submitter := NewSubmitter(fake, &fakeUploader{})

	_, err := submitter.Submit(context.Background(), "user-1", &SubmitReq{Category: "graffiti"})
	if err == nil {
		t.Fatal("Submit accepted an unknown category")
	}
	if fake.createReportCalls != 0 {
		t.Errorf("parent insert attempted for an unknown category")
	}
}
