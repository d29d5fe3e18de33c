package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/neighborly/neighborly-be/geo"
	"github.com/neighborly/neighborly-be/model"
)

type Database interface {
	ReportDatabase
	ModerationDatabase
	UserDatabase
	GetSQLDB() *sql.DB
	Close() error
}

type CreateReport struct {
	UserId      string
	Category    model.Category
	Description string
	Location    geo.Point
	ImageUrl    string // already durable; empty if the report has no image
}

type CreateEventDetail struct {
	ReportId int64
	Subtype  string
	StartsAt time.Time
}

type CreateHazardDetail struct {
	ReportId int64
	Subtype  string
}

// CreateItemDetail is shared by the lost and found variants; they
// differ only in target table.
type CreateItemDetail struct {
	ReportId    int64
	Subtype     string
	ContactInfo string
}

type ReportsListQuery struct {
	From       *time.Time
	LastId     string
	Categories []model.Category
	Limit      int16
}

type ReportDatabase interface {
	CreateReport(ctx context.Context, req *CreateReport) (reportId int64, err error)
	CreateEventDetail(ctx context.Context, req *CreateEventDetail) error
	CreateHazardDetail(ctx context.Context, req *CreateHazardDetail) error
	CreateLostItemDetail(ctx context.Context, req *CreateItemDetail) error
	CreateFoundItemDetail(ctx context.Context, req *CreateItemDetail) error
	GetReportById(ctx context.Context, id int64) (*model.ReportWithDetail, error)
	GetReports(ctx context.Context, query *ReportsListQuery) ([]*model.Report, error)
}

type ModerationDatabase interface {
	GetShadowbannedUserIds(ctx context.Context) ([]string, error)
	SetShadowbanned(ctx context.Context, userId string, shadowbanned bool) error
}

type UserDatabase interface {
	CreateUser(context.Context, *model.User) error
	GetUser(context.Context, string) (*model.User, error)
}
