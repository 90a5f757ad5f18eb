package session

import "github.com/fossecrm/fosse/internal/upstream"

// Provider answers whether a valid upstream session exists. Every operation
// that would touch the upstream short-circuits to a silent no-op when it
// does not.
type Provider interface {
	Valid() bool
}

type clientProvider struct {
	client *upstream.Client
}

// FromClient derives session presence from the upstream credential.
func FromClient(client *upstream.Client) Provider {
	return &clientProvider{client: client}
}

func (p *clientProvider) Valid() bool {
	return p.client != nil && p.client.Session()
}

// Static is a fixed session answer, used by tests and embedded-only setups.
type Static bool

func (s Static) Valid() bool { return bool(s) }
