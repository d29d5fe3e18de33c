package routes

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/neighborly/neighborly-be/app"
	"github.com/neighborly/neighborly-be/db"
	"github.com/neighborly/neighborly-be/middleware"
	"github.com/neighborly/neighborly-be/services"
	"github.com/neighborly/neighborly-be/util"
)

type reportRoutes struct {
	db        db.Database
	submitter *app.Submitter
	bucket    *services.StorageBucket
}

func AddReportRoutes(group *gin.RouterGroup, database db.Database, submitter *app.Submitter, bucket *services.StorageBucket, authClient *auth.Client) {
	routes := reportRoutes{db: database, submitter: submitter, bucket: bucket}
	reports := group.Group("/reports", middleware.GenAuth(database, authClient, &middleware.AuthConfig{}))
	reports.PUT("", util.HandlerWrapper(routes.createReport, &util.HandlerOpts{}))
	reports.GET("/:id", util.HandlerWrapper(routes.getReportById, &util.HandlerOpts{}))
	reports.POST("/images", util.HandlerWrapper(routes.reserveImageBlob, &util.HandlerOpts{}))
}

func (rr *reportRoutes) createReport(c *gin.Context) (interface{}, *util.HTTPError) {
	var req app.SubmitReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if len(req.Description) == 0 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "description must not be empty",
		}
	}
	req.Description = util.XSSSanitize(req.Description)

	id, err := rr.submitter.Submit(c, middleware.MustGetToken(c).UID, &req)
	if err != nil {
		return nil, util.BuildSubmitHTTPErr(err)
	}
	return gin.H{
		"id": id,
	}, nil
}

func (rr *reportRoutes) getReportById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	report, err := rr.db.GetReportById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if report == nil {
		return nil, &util.HTTPError{
			Status:  http.StatusNotFound,
			Message: "report not found",
		}
	}
	return report, nil
}

// reserveImageBlob hands the client the object name to upload its image
// under; the subsequent submission references the same name.
func (rr *reportRoutes) reserveImageBlob(c *gin.Context) (interface{}, *util.HTTPError) {
	return gin.H{
		"blobName": rr.bucket.NewBlobName(),
	}, nil
}
