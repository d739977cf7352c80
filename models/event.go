package models

// Event is one message on a session's event stream. Name becomes the SSE
// event field.
type Event struct {
	Name string      `json:"name"`
	Data interface{} `json:"data"`
}

const (
	EventCheckout     = "checkout.status"
	EventNotification = "notification"
)
