package routes

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/neighborly/neighborly-be/db"
	"github.com/neighborly/neighborly-be/middleware"
	"github.com/neighborly/neighborly-be/model"
	"github.com/neighborly/neighborly-be/util"
)

type userRoutes struct {
	db db.UserDatabase
}

func AddUserRoutes(group *gin.RouterGroup, userDatabase db.UserDatabase, authClient *auth.Client) {
	routes := userRoutes{userDatabase}
	users := group.Group("/users", middleware.GenAuth(userDatabase, authClient, &middleware.AuthConfig{
		ProfileNotRequired: true,
	}))
	users.PUT("", util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
}

type createUserReq struct {
	DisplayName string `json:"displayName"`
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if err := ur.db.CreateUser(c, &model.User{
		Id:          middleware.MustGetToken(c).UID,
		DisplayName: req.DisplayName,
	}); err != nil {
		mysqlErr, ok := err.(*mysql.MySQLError)
		if !ok || !db.IsDupKeyErr(mysqlErr) {
			return nil, util.BuildDbHTTPErr(err)
		}
		return nil, &util.HTTPError{
			Status:  http.StatusConflict,
			Message: "profile already exists",
		}
	}
	return nil, nil
}
