package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/neighborly/neighborly-be/db"
	"github.com/neighborly/neighborly-be/model"
	"github.com/neighborly/neighborly-be/util"
)

type RawCursor = map[string]interface{}

type ReportFeedOpts struct {
	Limit int16
}

// ReportFeed pages through recent reports, newest first, hiding
// anything authored by a shadowbanned user.
type ReportFeed struct {
	db    db.ReportDatabase
	cache *ShadowbanCache

	Categories []model.Category `json:"categories,omitempty"`
	LastDate   time.Time        `json:"lastDate"`
	LastId     string           `json:"lastId"`
}

func NewReportFeed(reportDb db.ReportDatabase, cache *ShadowbanCache, categories []model.Category) *ReportFeed {
	return &ReportFeed{
		db:         reportDb,
		cache:      cache,
		Categories: categories,
		LastDate:   time.Now(),
		LastId:     "",
	}
}

// ReportFeedFromRaw assumes rawCursor is not nil.
func ReportFeedFromRaw(reportDb db.ReportDatabase, cache *ShadowbanCache, rawCursor RawCursor) (*ReportFeed, error) {
	lastDateStr, hasLastDate := rawCursor["lastDate"].(string)
	lastDate := time.Now()
	if hasLastDate {
		var err error
		lastDate, err = util.ParseTime(lastDateStr)
		if err != nil {
			return nil, err
		}
	}

	var categories []model.Category
	if rawCategories, hasCategories := rawCursor["categories"]; hasCategories && rawCategories != nil {
		var err error
		categories, err = castCategoriesFromCursor(rawCategories)
		if err != nil {
			return nil, err
		}
	}

	lastId, _ := rawCursor["lastId"].(string)

	return &ReportFeed{
		db:         reportDb,
		cache:      cache,
		Categories: categories,
		LastDate:   lastDate,
		LastId:     lastId,
	}, nil
}

// CategoriesFromStrings validates a client-supplied category filter.
// A nil or empty input means no filter.
func CategoriesFromStrings(raw []string) ([]model.Category, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	categories := make([]model.Category, len(raw))
	for i, categoryStr := range raw {
		if !model.Category(categoryStr).Valid() {
			return nil, fmt.Errorf("unknown category %q", categoryStr)
		}
		categories[i] = model.Category(categoryStr)
	}
	return categories, nil
}

func castCategoriesFromCursor(raw interface{}) ([]model.Category, error) {
	rawArray, isArray := raw.([]interface{})
	if !isArray {
		return nil, fmt.Errorf("categories %v are of wrong format", raw)
	}
	categories := make([]model.Category, len(rawArray))
	for i, rawCategory := range rawArray {
		categoryStr, isOk := rawCategory.(string)
		if !isOk || !model.Category(categoryStr).Valid() {
			return nil, fmt.Errorf("category %v is of wrong format", rawCategory)
		}
		categories[i] = model.Category(categoryStr)
	}
	return categories, nil
}

// Reports fetches the next page and filters out shadowbanned authors.
// The cursor for the following page is built from the unfiltered page
// so pagination doesn't stall when a whole page is hidden.
func (rf *ReportFeed) Reports(ctx context.Context, opts *ReportFeedOpts) (reports []*model.Report, cursor *ReportFeed, err error) {
	page, err := rf.db.GetReports(ctx, &db.ReportsListQuery{
		From:       &rf.LastDate,
		LastId:     rf.LastId,
		Categories: rf.Categories,
		Limit:      opts.Limit,
	})
	if err != nil {
		return nil, nil, err
	}
	return filterShadowbanned(page, rf.cache.Get(ctx)), rf.buildCursorForNextPage(page), nil
}

func filterShadowbanned(reports []*model.Report, bannedIds []string) []*model.Report {
	banned := make(map[string]struct{}, len(bannedIds))
	for _, id := range bannedIds {
		banned[id] = struct{}{}
	}
	visible := make([]*model.Report, 0, len(reports))
	for _, report := range reports {
		if _, isBanned := banned[report.UserId]; !isBanned {
			visible = append(visible, report)
		}
	}
	return visible
}

func (rf *ReportFeed) buildCursorForNextPage(previousPage []*model.Report) *ReportFeed {
	if len(previousPage) == 0 {
		return nil
	}
	last := previousPage[len(previousPage)-1]
	return &ReportFeed{
		db:         rf.db,
		cache:      rf.cache,
		Categories: rf.Categories,
		LastDate:   last.CreatedAt,
		LastId:     strconv.FormatInt(last.Id, 10),
	}
}
