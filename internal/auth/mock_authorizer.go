package auth

import (
	"context"
	"fmt"
	"strings"
)

// devTokenPrefix is recognized by the local-development authorizer only.
const devTokenPrefix = "sk_dev_"

// MockAuthorizer is the local-development identity provider. It accepts
// tokens of the form "sk_dev_<userId>" and resolves them to that user, so
// a dev stack can act as any user without a credential store.
type MockAuthorizer struct{}

func NewMockAuthorizer() *MockAuthorizer { return &MockAuthorizer{} }

func (m *MockAuthorizer) Authorize(ctx context.Context, token string) (*ActorInfo, error) {
	userID, ok := strings.CutPrefix(token, devTokenPrefix)
	if !ok || userID == "" {
		return nil, fmt.Errorf("%w: not a local development token", ErrInvalidToken)
	}
	return &ActorInfo{
		ActorID: userID,
		KeyName: "Local Development Key",
	}, nil
}
