package greeting

// Greeting is the response body of GET /greeting.
type Greeting struct {
	ID      int64  `json:"id" doc:"Issue number, unique and increasing from 1 for the lifetime of the process" example:"1"`
	Content string `json:"content" doc:"Greeting text" example:"Hello, Spring"`
}
