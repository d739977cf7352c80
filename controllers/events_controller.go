package controllers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"farm-fresh/middleware"
	"farm-fresh/models"
)

type EventsController struct {
	heartbeat time.Duration
}

func NewEventsController(heartbeat time.Duration) *EventsController {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &EventsController{heartbeat: heartbeat}
}

// @Summary Session event stream
// @Description Server-Sent Events for cart changes, notifications and checkout status
// @Tags Events
// @Produce text/event-stream
// @Security BearerAuth
// @Param token query string false "Session token when the Authorization header cannot be set"
// @Success 200 {string} string "event stream"
// @Router /events [get]
func (ctrl *EventsController) Stream(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	events, cancel := sess.Events.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent(models.EventCheckout, models.CheckoutEvent{Status: sess.Checkout.Status()})
	c.Writer.Flush()

	ticker := time.NewTicker(ctrl.heartbeat)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case e, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(e.Name, e.Data)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"time": time.Now().Unix()})
			return true
		}
	})
}
