package servehttp

import (
	"bytes"
	"flyerboard/bizerror"
	"flyerboard/export"
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterExportHandler(r gin.IRouter, b BoardView) {
	r.GET("/v1/export/projects.csv", func(c *gin.Context) {
		state := b.Snapshot()
		if state.Fatal != nil {
			panic(&bizerror.ErrBoardUnavailable{Cause: state.Fatal})
		}

		buf := &bytes.Buffer{}
		if err := export.WriteCSV(buf, state.Projects); err != nil {
			panic(err)
		}
		c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	})
}
