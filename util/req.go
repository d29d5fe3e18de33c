package util

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Status  int
	Message string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

func BuildDbHTTPErr(err error) *HTTPError {
	log.Println("database error occurred", err)
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "database error",
	}
}

func BuildSubmitHTTPErr(err error) *HTTPError {
	log.Println("report submission failed", err)
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "report submission failed",
	}
}

func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: err.Error(),
	}
}

type HandlerOpts struct {
}

// HandlerWrapper adapts a handler returning (data, err) into the
// uniform {success, data|message} response envelope.
func HandlerWrapper(handler func(c *gin.Context) (interface{}, *HTTPError), opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			c.JSON(httpErr.Status, gin.H{
				"success": false,
				"message": httpErr.Message,
			})
			return
		}
		res := gin.H{"success": true}
		if data != nil {
			res["data"] = data
		}
		c.JSON(http.StatusOK, res)
	}
}

func ParseId(val string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, &HTTPError{
			Status:  http.StatusBadRequest,
			Message: "id malformed",
		}
	}
	return id, nil
}
