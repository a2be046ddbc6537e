package token

// Static is the lifetime of a token the provider asserts never expires.
// It carries no data and persists as an empty JSON object.
type Static struct{}

var _ LifetimeParser[Static] = Static{}

// Expired is always false.
func (Static) Expired() bool {
	return false
}

// FromResponse ignores the response.
func (Static) FromResponse(Response) (Static, error) {
	return Static{}, nil
}

// FromResponseInherit ignores both the response and the previous value.
func (Static) FromResponseInherit(Response, Static) (Static, error) {
	return Static{}, nil
}
