package fakestoragerepo

import (
	"context"
	"errors"
	"sync"

	"github.com/jrsteele09/go-docadmin/session/storage"
)

var _ storage.Repo = (*FakeStorageRepo)(nil)

// FakeStorageRepo is an in-memory storage.Repo. It backs SESSION_STORE=memory
// and the tests; FailWrites makes every Set/Delete fail.
type FakeStorageRepo struct {
	values     map[string]string
	lock       sync.RWMutex
	FailWrites bool
	writes     int
}

func NewFakeStorageRepo() *FakeStorageRepo {
	return &FakeStorageRepo{
		values: make(map[string]string),
	}
}

func (r *FakeStorageRepo) Get(_ context.Context, key string) (string, bool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *FakeStorageRepo) Set(_ context.Context, values map[string]string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.FailWrites {
		return errors.New("write failed")
	}
	for k, v := range values {
		r.values[k] = v
	}
	r.writes++
	return nil
}

func (r *FakeStorageRepo) Delete(_ context.Context, keys ...string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.FailWrites {
		return errors.New("write failed")
	}
	for _, k := range keys {
		delete(r.values, k)
	}
	r.writes++
	return nil
}

func (r *FakeStorageRepo) Close() error {
	return nil
}

// Values returns a copy of the stored values
func (r *FakeStorageRepo) Values() map[string]string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

func (r *FakeStorageRepo) Writes() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.writes
}
