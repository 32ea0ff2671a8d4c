package servehttp

import (
	"github.com/gin-gonic/gin"
)

const refreshEvent = "refresh"

// RegisterChangesHandler streams a "refresh" server-sent event carrying the
// board version after every applied fetch, starting with the current one.
func RegisterChangesHandler(r gin.IRouter, b BoardView) {
	r.GET("/v1/changes", func(c *gin.Context) {
		versions, cancel := b.Listen()
		defer cancel()

		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no")
		c.SSEvent(refreshEvent, b.Snapshot().Version)
		c.Writer.Flush()

		done := c.Request.Context().Done()
		for {
			select {
			case <-done:
				return
			case v, ok := <-versions:
				if !ok {
					return
				}
				c.SSEvent(refreshEvent, v)
				c.Writer.Flush()
			}
		}
	})
}
