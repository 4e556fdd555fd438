package fakeuserrepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jrsteele09/go-docadmin/internal/errors"
	"github.com/jrsteele09/go-docadmin/paging"
	"github.com/jrsteele09/go-docadmin/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory users.UserRepo. Group ids resolve to the
// names registered with AddGroup.
type FakeUserRepo struct {
	users       map[int64]*users.User
	usernameIds map[string]int64 // username to user id
	groupNames  map[int64]string
	nextID      int64
	lock        sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:       make(map[int64]*users.User),
		usernameIds: make(map[string]int64),
		groupNames:  make(map[int64]string),
		nextID:      1,
	}
}

func (ur *FakeUserRepo) AddGroup(id int64, name string) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.groupNames[id] = name
}

func (ur *FakeUserRepo) List(_ context.Context, params paging.Params) (*paging.Paged[users.User], error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userList := make([]users.User, 0)
	for _, v := range ur.users {
		if params.Q != "" && !strings.Contains(strings.ToLower(v.Username), strings.ToLower(params.Q)) {
			continue
		}
		userList = append(userList, *v)
	}

	sort.Slice(userList, func(i, j int) bool {
		return userList[i].ID < userList[j].ID
	})

	size := params.Size
	if size <= 0 {
		size = 50
	}
	offset := params.Page * size
	content := []users.User{}
	if offset < len(userList) {
		content = userList[offset:min(offset+size, len(userList))]
	}

	return &paging.Paged[users.User]{
		Content:       content,
		Number:        params.Page,
		Size:          size,
		TotalElements: len(userList),
		TotalPages:    (len(userList) + size - 1) / size,
	}, nil
}

func (ur *FakeUserRepo) Get(_ context.Context, id int64) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	u, ok := ur.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, errors.ErrNotFound)
	}
	out := *u
	return &out, nil
}

func (ur *FakeUserRepo) Create(_ context.Context, req users.CreateRequest) (*users.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, exists := ur.usernameIds[req.Username]; exists {
		return nil, fmt.Errorf("username %s: %w", req.Username, errors.ErrConflict)
	}
	u := &users.User{
		ID:                 ur.nextID,
		Username:           req.Username,
		FullName:           req.FullName,
		DailyTargetMinutes: req.DailyTargetMinutes,
		Roles:              req.Roles,
		Groups:             ur.resolveGroups(req.GroupIDs),
	}
	ur.nextID++
	ur.users[u.ID] = u
	ur.usernameIds[u.Username] = u.ID
	out := *u
	return &out, nil
}

func (ur *FakeUserRepo) Update(_ context.Context, id int64, req users.UpdateRequest) (*users.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ur.lock.Lock()
	defer ur.lock.Unlock()

	u, ok := ur.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, errors.ErrNotFound)
	}
	if req.FullName != nil {
		u.FullName = req.FullName
	}
	if req.DailyTargetMinutes != nil {
		u.DailyTargetMinutes = req.DailyTargetMinutes
	}
	if req.Roles != nil {
		u.Roles = req.Roles
	}
	if req.GroupIDs != nil {
		u.Groups = ur.resolveGroups(req.GroupIDs)
	}
	out := *u
	return &out, nil
}

// resolveGroups must be called with the lock held
func (ur *FakeUserRepo) resolveGroups(ids []int64) []string {
	names := []string{}
	for _, id := range ids {
		if name, ok := ur.groupNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
