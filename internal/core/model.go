package core

// Business is the tenant record every domain row is scoped to.
type Business struct {
	ID           int    `json:"id"`
	BusinessCode string `json:"business_code"`
	Name         string `json:"name"`
	Currency     string `json:"currency"`
}
