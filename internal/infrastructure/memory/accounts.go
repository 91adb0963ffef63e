package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/vendor-management/internal/domain"
	"github.com/jhoicas/vendor-management/internal/domain/entity"
	"github.com/jhoicas/vendor-management/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.ProfileRepository = (*ProfileRepo)(nil)
)

// UserRepo usuarios y grants en memoria.
type UserRepo struct{ b backend }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	st, unlock := r.b.lock()
	defer unlock()
	for _, existing := range st.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	st.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	st, unlock := r.b.lock()
	defer unlock()
	if u, ok := st.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	st, unlock := r.b.lock()
	defer unlock()
	for _, u := range st.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	st, unlock := r.b.lock()
	defer unlock()
	cur, ok := st.users[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for id, other := range st.users {
		if id != u.ID && (other.Username == u.Username || other.Email == u.Email) {
			return domain.ErrDuplicate
		}
	}
	cur.Username, cur.Email = u.Username, u.Email
	cur.FirstName, cur.LastName = u.FirstName, u.LastName
	cur.IsActive, cur.UpdatedAt = u.IsActive, u.UpdatedAt
	st.users[u.ID] = cur
	return nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	st, unlock := r.b.lock()
	defer unlock()
	u, ok := st.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	st.users[id] = u
	return nil
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	st, unlock := r.b.lock()
	defer unlock()
	list := make([]*entity.User, 0, len(st.users))
	for _, u := range st.users {
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].DateJoined.After(list[j].DateJoined) })
	return page(list, limit, offset), nil
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	st, unlock := r.b.lock()
	defer unlock()
	return len(st.users), nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	st, unlock := r.b.lock()
	defer unlock()
	st.deleteUser(id)
	return nil
}

func (r *UserRepo) PermissionCodenames(_ context.Context, userID string) ([]string, error) {
	st, unlock := r.b.lock()
	defer unlock()
	out := []string{}
	for k := range st.grants {
		if k.userID == userID {
			out = append(out, st.permissions[k.permissionID].Codename)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *UserRepo) PermissionIDs(_ context.Context, userID string) ([]string, error) {
	st, unlock := r.b.lock()
	defer unlock()
	out := []string{}
	for k := range st.grants {
		if k.userID == userID {
			out = append(out, k.permissionID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *UserRepo) AddPermission(_ context.Context, userID, permissionID string) (bool, error) {
	st, unlock := r.b.lock()
	defer unlock()
	if _, ok := st.users[userID]; !ok {
		return false, domain.ErrNotFound
	}
	if _, ok := st.permissions[permissionID]; !ok {
		return false, domain.ErrNotFound
	}
	k := grantKey{userID, permissionID}
	if _, ok := st.grants[k]; ok {
		return false, nil
	}
	st.grants[k] = time.Now()
	return true, nil
}

func (r *UserRepo) RemovePermission(_ context.Context, userID, permissionID string) (bool, error) {
	st, unlock := r.b.lock()
	defer unlock()
	k := grantKey{userID, permissionID}
	if _, ok := st.grants[k]; !ok {
		return false, nil
	}
	delete(st.grants, k)
	return true, nil
}

// ProfileRepo perfiles en memoria.
type ProfileRepo struct{ b backend }

func (r *ProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	st, unlock := r.b.lock()
	defer unlock()
	if _, ok := st.users[p.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := st.profiles[p.UserID]; ok {
		return domain.ErrDuplicate
	}
	st.profiles[p.UserID] = *p
	return nil
}

func (r *ProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	st, unlock := r.b.lock()
	defer unlock()
	if p, ok := st.profiles[userID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *ProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	st, unlock := r.b.lock()
	defer unlock()
	if _, ok := st.profiles[p.UserID]; !ok {
		return domain.ErrNotFound
	}
	st.profiles[p.UserID] = *p
	return nil
}
