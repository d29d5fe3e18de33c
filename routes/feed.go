package routes

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/neighborly/neighborly-be/app"
	"github.com/neighborly/neighborly-be/db"
	"github.com/neighborly/neighborly-be/middleware"
	"github.com/neighborly/neighborly-be/util"
)

type feedRoutes struct {
	db    db.Database
	cache *app.ShadowbanCache
}

func AddFeedRoutes(group *gin.RouterGroup, database db.Database, cache *app.ShadowbanCache, authClient *auth.Client) {
	routes := feedRoutes{db: database, cache: cache}
	feeds := group.Group("/feeds", middleware.GenAuth(database, authClient, &middleware.AuthConfig{}))
	feeds.POST("", util.HandlerWrapper(routes.getFeed, &util.HandlerOpts{}))
}

type getFeedReq struct {
	Categories []string      `json:"categories"`
	Cursor     app.RawCursor `json:"cursor"`
}

func (fr *feedRoutes) getFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	var req getFeedReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}

	feed, err := feedForReq(fr.db, fr.cache, &req)
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		}
	}
	reports, cursor, err := feed.Reports(c, &app.ReportFeedOpts{Limit: 20})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}

	return gin.H{
		"reports": reports,
		"cursor":  cursor,
	}, nil
}

func feedForReq(database db.Database, cache *app.ShadowbanCache, req *getFeedReq) (*app.ReportFeed, error) {
	if req.Cursor != nil {
		return app.ReportFeedFromRaw(database, cache, req.Cursor)
	}
	categories, err := app.CategoriesFromStrings(req.Categories)
	if err != nil {
		return nil, err
	}
	return app.NewReportFeed(database, cache, categories), nil
}
