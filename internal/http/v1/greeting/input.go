package greeting

// GetInput holds the query parameters for GET /greeting.
type GetInput struct {
	Name string `query:"name" default:"World" doc:"Name to greet, passed through verbatim" example:"Spring"`
}
