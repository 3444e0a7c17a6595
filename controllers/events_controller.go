package controllers

import (
	"io"

	"github.com/gin-gonic/gin"

	"jobbuddy/services"
)

type EventsController struct {
	Hub *services.ProgressHub
}

func NewEventsController(hub *services.ProgressHub) *EventsController {
	return &EventsController{Hub: hub}
}

// Stream sends the user's progress events over server-sent events until
// the client disconnects.
func (c *EventsController) Stream(ctx *gin.Context) {
	userID := ctx.GetInt("user_id")

	events, unsubscribe := c.Hub.Subscribe(userID)
	defer unsubscribe()

	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	ctx.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			ctx.SSEvent(event.Type, event)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
