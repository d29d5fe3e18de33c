package mysql

import (
	"context"
	"time"

	appDb "github.com/neighborly/neighborly-be/db"
	"github.com/neighborly/neighborly-be/db/dao"
	"github.com/neighborly/neighborly-be/model"
	"github.com/upper/db/v4"
)

type ReportDB struct {
	sess db.Session
}

func getReportDB(sess db.Session) *ReportDB {
	return &ReportDB{sess}
}

// CreateReport inserts only the parent row. The category detail is a
// separate insert on purpose: the two writes are not wrapped in a
// transaction so callers see the same partial-failure semantics the
// hosted table store gives the mobile client.
func (rdb *ReportDB) CreateReport(ctx context.Context, req *appDb.CreateReport) (int64, error) {
	res, err := rdb.sess.SQL().
		InsertInto("reports").
		Columns("user_id", "category", "description", "location", "image_url").
		Values(req.UserId, req.Category, req.Description, req.Location.String(), nullableImageUrl(req.ImageUrl)).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func nullableImageUrl(url string) interface{} {
	if url == "" {
		return nil
	}
	return url
}

func (rdb *ReportDB) CreateEventDetail(ctx context.Context, req *appDb.CreateEventDetail) error {
	_, err := rdb.sess.SQL().
		InsertInto("events").
		Columns("report_id", "subtype", "starts_at").
		Values(req.ReportId, req.Subtype, req.StartsAt).
		ExecContext(ctx)
	return err
}

func (rdb *ReportDB) CreateHazardDetail(ctx context.Context, req *appDb.CreateHazardDetail) error {
	_, err := rdb.sess.SQL().
		InsertInto("hazards").
		Columns("report_id", "subtype").
		Values(req.ReportId, req.Subtype).
		ExecContext(ctx)
	return err
}

func (rdb *ReportDB) CreateLostItemDetail(ctx context.Context, req *appDb.CreateItemDetail) error {
	return rdb.createItemDetail(ctx, "lostitems", req)
}

func (rdb *ReportDB) CreateFoundItemDetail(ctx context.Context, req *appDb.CreateItemDetail) error {
	return rdb.createItemDetail(ctx, "founditems", req)
}

func (rdb *ReportDB) createItemDetail(ctx context.Context, table string, req *appDb.CreateItemDetail) error {
	_, err := rdb.sess.SQL().
		InsertInto(table).
		Columns("report_id", "subtype", "contact_info").
		Values(req.ReportId, req.Subtype, req.ContactInfo).
		ExecContext(ctx)
	return err
}

type flattenedReport struct {
	Id          int64          `db:"id"`
	UserId      string         `db:"user_id"`
	Category    model.Category `db:"category"`
	Description string         `db:"description"`
	Location    string         `db:"location"`
	ImageUrl    dao.NullString `db:"image_url"`
	CreatedAt   time.Time      `db:"created_at"`
}

var reportColumns = []interface{}{
	"r.id",
	"r.user_id",
	"r.category",
	"r.description",
	"r.location",
	"r.image_url",
	"r.created_at",
}

func (rdb *ReportDB) GetReportById(ctx context.Context, id int64) (*model.ReportWithDetail, error) {
	var flattened flattenedReport
	if err := rdb.sess.SQL().
		Select(reportColumns...).
		From("reports AS r").
		Where("r.id = ?", id).
		IteratorContext(ctx).
		One(&flattened); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}

	report := &model.ReportWithDetail{Report: buildReportFromFlattened(&flattened)}
	return report, rdb.attachDetail(ctx, report)
}

// attachDetail loads the category row for the report. A missing detail
// row (an orphaned parent) is not an error: the report is returned
// without it.
func (rdb *ReportDB) attachDetail(ctx context.Context, report *model.ReportWithDetail) error {
	var err error
	switch report.Category {
	case model.CategoryEvent:
		var detail model.EventDetail
		if err = rdb.oneDetail(ctx, "events", report.Id, &detail); err == nil {
			report.Event = &detail
		}
	case model.CategoryHazard:
		var detail model.HazardDetail
		if err = rdb.oneDetail(ctx, "hazards", report.Id, &detail); err == nil {
			report.Hazard = &detail
		}
	case model.CategoryLost:
		var detail model.LostItemDetail
		if err = rdb.oneDetail(ctx, "lostitems", report.Id, &detail); err == nil {
			report.Lost = &detail
		}
	case model.CategoryFound:
		var detail model.FoundItemDetail
		if err = rdb.oneDetail(ctx, "founditems", report.Id, &detail); err == nil {
			report.Found = &detail
		}
	}
	if err == db.ErrNoMoreRows {
		return nil
	}
	return err
}

func (rdb *ReportDB) oneDetail(ctx context.Context, table string, reportId int64, dest interface{}) error {
	return rdb.sess.SQL().
		Select("*").
		From(table).
		Where("report_id = ?", reportId).
		IteratorContext(ctx).
		One(dest)
}

func (rdb *ReportDB) GetReports(ctx context.Context, query *appDb.ReportsListQuery) ([]*model.Report, error) {
	var flattenedReports []flattenedReport
	if err := rdb.sess.SQL().
		Select(reportColumns...).
		From("reports AS r").
		Where("(ISNULL(?) OR (r.created_at < ? OR r.created_at = ? AND (? = '' OR r.id < ?)))",
			query.From, query.From, query.From, query.LastId, query.LastId).
		And("(ISNULL(?) OR r.category IN ?)", query.Categories, query.Categories).
		OrderBy("r.created_at DESC", "r.id DESC").
		Limit(int(query.Limit)).
		IteratorContext(ctx).
		All(&flattenedReports); err != nil {
		return nil, err
	}
	reports := make([]*model.Report, len(flattenedReports))
	for i, flattened := range flattenedReports {
		reports[i] = buildReportFromFlattened(&flattened)
	}
	return reports, nil
}

func buildReportFromFlattened(report *flattenedReport) *model.Report {
	return &model.Report{
		Id:          report.Id,
		UserId:      report.UserId,
		Category:    report.Category,
		Description: report.Description,
		Location:    report.Location,
		ImageUrl:    report.ImageUrl.AsString(),
		CreatedAt:   report.CreatedAt,
	}
}
