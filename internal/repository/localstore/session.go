package localstore

import (
	"errors"
	"fmt"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository"
	"github.com/jwalitptl/opd-booking/pkg/kvstore"
)

type sessionRepository struct {
	store *kvstore.Store
}

func NewSessionRepository(store *kvstore.Store) repository.SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Save(identity *model.Identity) error {
	if err := r.store.Put(sessionKey, identity); err != nil {
		return fmt.Errorf("failed to store session pointer: %w", err)
	}
	return nil
}

// Load returns the stored session pointer, or (nil, nil) when nobody is
// logged in. A malformed pointer propagates as a decode error so the
// caller can decide to reset it.
func (r *sessionRepository) Load() (*model.Identity, error) {
	var identity model.Identity
	err := r.store.Get(sessionKey, &identity)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *sessionRepository) Clear() error {
	return r.store.Delete(sessionKey)
}
