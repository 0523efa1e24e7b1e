package api

import (
	"io"

	"github.com/gin-gonic/gin"
)

// EventsHandler streams run events as Server-Sent Events until the client
// disconnects. The SSE event name is the event type.
func (api *API) EventsHandler(c *gin.Context) {
	sub := api.engine.Subscribe()
	defer sub.Cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-sub.C():
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Type), ev)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
