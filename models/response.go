package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type ProductListResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    []Product   `json:"data"`
	Total   int         `json:"total"`
	Empty   bool        `json:"empty"`
	Filters FilterState `json:"filters"`
	Links   FilterLinks `json:"links"`
}

type FilterLinks struct {
	Self         string `json:"self"`
	ClearFilters string `json:"clear_filters"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type AddToCartResponse struct {
	Cart         CartSummary  `json:"cart"`
	Notification Notification `json:"notification"`
}
