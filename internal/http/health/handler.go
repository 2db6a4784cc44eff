package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	greetingsvc "github.com/janisto/greeting-api/internal/service/greeting"
)

// Status is the payload for the health endpoint.
type Status struct {
	Status    string `json:"status" example:"healthy"`
	Greetings int64  `json:"greetings" doc:"Greetings issued since the process started" example:"42"`
}

// Output wraps the health payload.
type Output struct {
	Body Status
}

// Register wires the liveness route. It only reads the greeting counter.
func Register(api huma.API, svc greetingsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Liveness check",
		Tags:        []string{"Health"},
	}, func(context.Context, *struct{}) (*Output, error) {
		return &Output{Body: Status{Status: "healthy", Greetings: svc.Issued()}}, nil
	})
}
