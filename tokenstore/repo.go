// Package tokenstore persists bearer tokens between runs using their
// serialized form.
package tokenstore

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/jrsteele09/go-oauth-tokens/internal/errors"
	"github.com/jrsteele09/go-oauth-tokens/token"
)

// Repo stores opaque serialized tokens by key.
type Repo interface {
	// Save creates or replaces the value at key
	Save(ctx context.Context, key string, data []byte) error

	// Load returns the value at key, or errors.ErrNotFound
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes key, or returns errors.ErrNotFound
	Delete(ctx context.Context, key string) error

	// List returns all stored keys in ascending order
	List(ctx context.Context) ([]string, error)
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)

// ValidateKey rejects keys that are unsafe as file names or Redis key suffixes.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return errors.Wrapf(errors.ErrInvalidKey, "%q", key)
	}
	return nil
}

// Key is the conventional store key for an account's token with a provider.
func Key(providerName, account string) string {
	return providerName + "." + account
}

// Put serializes b and saves it under key.
func Put[L token.LifetimeParser[L]](ctx context.Context, repo Repo, key string, b token.Bearer[L]) error {
	data, err := json.Marshal(b)
	if err != nil {
		return errors.Wrapf(err, "tokenstore.Put %q", key)
	}
	return repo.Save(ctx, key, data)
}

// Get loads the token saved under key.
func Get[L token.LifetimeParser[L]](ctx context.Context, repo Repo, key string) (token.Bearer[L], error) {
	var b token.Bearer[L]
	data, err := repo.Load(ctx, key)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return b, errors.Wrapf(err, "tokenstore.Get %q", key)
	}
	return b, nil
}
