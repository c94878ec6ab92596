package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/fungi-kb/apiserver/internal/store"
	"github.com/fungi-kb/apiserver/types"
)

// fakeUserRepo is an in-memory services.UserRepository.
type fakeUserRepo struct {
	nextID int
	users  map[int]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]types.User)}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) Exists(ctx context.Context, id int) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]types.User, error) {
	users := make([]types.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user types.User) (types.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeMushroomRepo is an in-memory services.MushroomRepository.
type fakeMushroomRepo struct {
	mushrooms map[string]types.Mushroom
}

func newFakeMushroomRepo() *fakeMushroomRepo {
	return &fakeMushroomRepo{mushrooms: make(map[string]types.Mushroom)}
}

func (f *fakeMushroomRepo) List(ctx context.Context, offset, limit int) ([]types.Mushroom, int, error) {
	all := make([]types.Mushroom, 0, len(f.mushrooms))
	for _, m := range f.mushrooms {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ScientificName < all[j].ScientificName })

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeMushroomRepo) Get(ctx context.Context, id string) (types.Mushroom, error) {
	m, ok := f.mushrooms[id]
	if !ok {
		return types.Mushroom{}, store.ErrNotFound
	}
	return m, nil
}

func (f *fakeMushroomRepo) GetByScientificName(ctx context.Context, name string) (types.Mushroom, error) {
	for _, m := range f.mushrooms {
		if m.ScientificName == name {
			return m, nil
		}
	}
	return types.Mushroom{}, store.ErrNotFound
}

func (f *fakeMushroomRepo) Create(ctx context.Context, mushroom types.Mushroom) (types.Mushroom, error) {
	for _, existing := range f.mushrooms {
		if existing.ScientificName == mushroom.ScientificName {
			return types.Mushroom{}, store.ErrConflict
		}
	}
	mushroom.CreatedAt = time.Now()
	mushroom.UpdatedAt = mushroom.CreatedAt
	f.mushrooms[mushroom.ID] = mushroom
	return mushroom, nil
}

func (f *fakeMushroomRepo) Update(ctx context.Context, mushroom types.Mushroom) (types.Mushroom, error) {
	if _, ok := f.mushrooms[mushroom.ID]; !ok {
		return types.Mushroom{}, store.ErrNotFound
	}
	mushroom.UpdatedAt = time.Now()
	f.mushrooms[mushroom.ID] = mushroom
	return mushroom, nil
}

func (f *fakeMushroomRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.mushrooms[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.mushrooms, id)
	return nil
}
