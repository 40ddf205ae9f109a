package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/ishara/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ishara/internal/common"
)

var ErrSlotEmpty = errors.New("session slot is empty")

// Slot is the durable register holding the serialized current user.
// Store overwrites the whole value; Clear of an empty slot succeeds.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Store(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// KVSlot keeps the session under one key of a metadata repository.
type KVSlot struct {
	repo metadata.Repository
	key  string
}

// NewKVSlot binds a slot to key in repo; an empty key means
// common.SessionSlotKey.
func NewKVSlot(repo metadata.Repository, key string) *KVSlot {
	if key == "" {
		key = common.SessionSlotKey
	}
	return &KVSlot{repo: repo, key: key}
}

func (s *KVSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrSlotEmpty
	}
	return data, nil
}

func (s *KVSlot) Store(ctx context.Context, data []byte) error {
	return s.repo.Set(ctx, s.key, data)
}

func (s *KVSlot) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, s.key)
}
