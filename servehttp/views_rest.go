package servehttp

import (
	"flyerboard/bizerror"
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterViewsHandler(r gin.IRouter, b BoardView) {
	r.GET("/v1/views", func(c *gin.Context) {
		if err := b.Fatal(); err != nil {
			panic(&bizerror.ErrBoardUnavailable{Cause: err})
		}
		c.JSON(http.StatusOK, b.View(c.Query("fragment")))
	})
}
