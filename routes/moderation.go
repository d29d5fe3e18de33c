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

type moderationRoutes struct {
	db    db.Database
	cache *app.ShadowbanCache
}

func AddModerationRoutes(group *gin.RouterGroup, database db.Database, cache *app.ShadowbanCache, authClient *auth.Client) {
	routes := moderationRoutes{db: database, cache: cache}
	moderation := group.Group("/moderation",
		middleware.GenAuth(database, authClient, &middleware.AuthConfig{}),
		middleware.RequireAdmin())
	moderation.POST("/shadowban", util.HandlerWrapper(routes.setShadowban, &util.HandlerOpts{}))
}

type setShadowbanReq struct {
	UserId       string `json:"userId"`
	Shadowbanned bool   `json:"shadowbanned"`
}

func (mr *moderationRoutes) setShadowban(c *gin.Context) (interface{}, *util.HTTPError) {
	var req setShadowbanReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if len(req.UserId) == 0 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "userId must not be empty",
		}
	}
	if err := mr.db.SetShadowbanned(c, req.UserId, req.Shadowbanned); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	// bound the visible inconsistency window below the cache TTL
	mr.cache.Invalidate()
	return nil, nil
}
