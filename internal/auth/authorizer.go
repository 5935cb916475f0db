package auth

import (
	"context"
)

// ActorInfo identifies an authenticated caller. The core trusts this value:
// it performs no authentication itself, but every query it issues is scoped
// by the actor's user ID.
type ActorInfo struct {
	ActorID string `json:"actor_id"`
	KeyName string `json:"key_name"`
}

// Authorizer resolves a bearer token to the acting user. Implementations
// validate the token against whatever credential store backs the deployment.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*ActorInfo, error)
}
