package greeting

import "context"

// DefaultName is greeted when the caller does not supply a name.
const DefaultName = "World"

// Greeting is a greeting record with its issue number.
type Greeting struct {
	ID      int64
	Content string
}

// Service issues greetings.
//
// Implementations must give every greeting an ID that has never been issued before by the
// same instance, starting at 1 with no gaps, including under concurrent calls.
type Service interface {
	Greet(ctx context.Context, name string) Greeting
	// Issued reports how many greetings have been issued so far.
	Issued() int64
}
