package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/sable/server/dao"
	"github.com/google/uuid"
)

// UsersRepository is an in-memory implementation of dao.UserRepository.
type UsersRepository struct {
	mtx             sync.Mutex
	users           map[uuid.UUID]dao.User
	byUsernameIndex map[string]uuid.UUID
}

// NewUsersRepository creates a new, empty UsersRepository.
func NewUsersRepository() *UsersRepository {
	return &UsersRepository{
		users:           make(map[uuid.UUID]dao.User),
		byUsernameIndex: make(map[string]uuid.UUID),
	}
}

func (repo *UsersRepository) Close() error {
	return nil
}

func (repo *UsersRepository) Create(ctx context.Context, user dao.User) (dao.User, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.User{}, fmt.Errorf("could not generate ID: %w", err)
	}

	// make sure the username is not already in the DB
	if _, ok := repo.byUsernameIndex[user.Username]; ok {
		return dao.User{}, dao.ErrConstraintViolation
	}

	user.ID = newUUID
	user.Created = time.Now()
	user.LastLogoutTime = time.Now()

	repo.users[user.ID] = user
	repo.byUsernameIndex[user.Username] = user.ID

	return user, nil
}

func (repo *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.User, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return dao.User{}, dao.ErrNotFound
	}

	return user, nil
}

func (repo *UsersRepository) GetByUsername(ctx context.Context, username string) (dao.User, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	id, ok := repo.byUsernameIndex[username]
	if !ok {
		return dao.User{}, dao.ErrNotFound
	}

	return repo.users[id], nil
}

func (repo *UsersRepository) Update(ctx context.Context, id uuid.UUID, user dao.User) (dao.User, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	existing, ok := repo.users[id]
	if !ok {
		return dao.User{}, dao.ErrNotFound
	}

	// if the username is being changed it must not conflict
	if user.Username != existing.Username {
		if _, ok := repo.byUsernameIndex[user.Username]; ok {
			return dao.User{}, dao.ErrConstraintViolation
		}
		delete(repo.byUsernameIndex, existing.Username)
	}

	user.ID = id
	user.Created = existing.Created

	repo.users[id] = user
	repo.byUsernameIndex[user.Username] = id

	return user, nil
}

func (repo *UsersRepository) Delete(ctx context.Context, id uuid.UUID) (dao.User, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return dao.User{}, dao.ErrNotFound
	}

	delete(repo.byUsernameIndex, user.Username)
	delete(repo.users, id)

	return user, nil
}
