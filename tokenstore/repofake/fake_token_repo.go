package faketokenrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/jrsteele09/go-oauth-tokens/internal/errors"
	"github.com/jrsteele09/go-oauth-tokens/tokenstore"
)

var _ tokenstore.Repo = (*FakeTokenRepo)(nil)

type FakeTokenRepo struct {
	tokens map[string][]byte
	lock   sync.RWMutex
}

func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{
		tokens: make(map[string][]byte),
	}
}

func (tr *FakeTokenRepo) Save(_ context.Context, key string, data []byte) error {
	if err := tokenstore.ValidateKey(key); err != nil {
		return err
	}
	tr.lock.Lock()
	defer tr.lock.Unlock()

	tr.tokens[key] = append([]byte(nil), data...)
	return nil
}

func (tr *FakeTokenRepo) Load(_ context.Context, key string) ([]byte, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	data, ok := tr.tokens[key]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (tr *FakeTokenRepo) Delete(_ context.Context, key string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.tokens[key]; !ok {
		return errors.ErrNotFound
	}
	delete(tr.tokens, key)
	return nil
}

func (tr *FakeTokenRepo) List(_ context.Context) ([]string, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	keys := make([]string, 0, len(tr.tokens))
	for k := range tr.tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
