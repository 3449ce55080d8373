package discogs

import "context"

// IdentityService reports who the configured token belongs to.
type IdentityService struct {
	client *Client
}

// Get returns the identity of the authenticated user.
//
// It is the cheapest authenticated call Discogs offers and is used to
// verify a token before doing real work.
func (s *IdentityService) Get(ctx context.Context) (*Identity, error) {
	var id Identity
	if err := s.client.get(ctx, "/oauth/identity", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}
