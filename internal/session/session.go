// Package session resolves the signed-in storefront user.
package session

import (
	"context"

	"github.com/jafarshop/storefront/internal/cache"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

// Provider returns the current user or *errors.ErrSessionRequired
type Provider interface {
	Current(ctx context.Context) (*domain.User, error)
}

type storageProvider struct {
	storage cache.Storage
}

// FromStorage reads the user saved under the "user" key at sign-in
func FromStorage(storage cache.Storage) Provider {
	return &storageProvider{storage: storage}
}

func (p *storageProvider) Current(ctx context.Context) (*domain.User, error) {
	var user domain.User
	found, err := cache.GetJSON(ctx, p.storage, cache.KeyUser, &user)
	if err != nil || !found || user.ID == "" {
		return nil, &errors.ErrSessionRequired{}
	}
	return &user, nil
}

// SignIn stores user as the device's session
func SignIn(ctx context.Context, storage cache.Storage, user domain.User) error {
	return cache.SetJSON(ctx, storage, cache.KeyUser, user)
}

// SignOut forgets the device's session
func SignOut(ctx context.Context, storage cache.Storage) error {
	return storage.Delete(ctx, cache.KeyUser)
}

type static struct {
	user *domain.User
}

// Static always returns user; a nil user means signed out
func Static(user *domain.User) Provider {
	return static{user: user}
}

func (s static) Current(context.Context) (*domain.User, error) {
	if s.user == nil || s.user.ID == "" {
		return nil, &errors.ErrSessionRequired{}
	}
	u := *s.user
	return &u, nil
}
