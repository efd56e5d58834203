package inmem

import (
	"context"
	"testing"

	"github.com/dekarrin/sable/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_Users_Create(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := NewDatastore()
	defer store.Close()

	created, err := store.Users().Create(ctx, dao.User{
		Username: "terezi",
		Password: "h4h4h4",
		Role:     dao.Normal,
	})
	if !assert.NoError(err) {
		return
	}
	assert.NotEqual(uuid.UUID{}, created.ID)
	assert.Equal("terezi", created.Username)
	assert.False(created.Created.IsZero())

	// a second user with the same username violates the username constraint
	_, err = store.Users().Create(ctx, dao.User{
		Username: "terezi",
		Password: "other",
	})
	assert.ErrorIs(err, dao.ErrConstraintViolation)
}

func Test_Users_GetByUsername(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := NewDatastore()
	defer store.Close()

	created, err := store.Users().Create(ctx, dao.User{Username: "sollux", Password: "2up3r"})
	if !assert.NoError(err) {
		return
	}

	actual, err := store.Users().GetByUsername(ctx, "sollux")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created.ID, actual.ID)

	_, err = store.Users().GetByUsername(ctx, "eridan")
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_Users_Update(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := NewDatastore()
	defer store.Close()

	created, err := store.Users().Create(ctx, dao.User{Username: "feferi", Password: "glub"})
	if !assert.NoError(err) {
		return
	}

	created.Username = "peixes"
	updated, err := store.Users().Update(ctx, created.ID, created)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("peixes", updated.Username)

	// old username no longer resolves
	_, err = store.Users().GetByUsername(ctx, "feferi")
	assert.ErrorIs(err, dao.ErrNotFound)

	// new one does
	actual, err := store.Users().GetByUsername(ctx, "peixes")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created.ID, actual.ID)

	// updating a user that does not exist fails
	_, err = store.Users().Update(ctx, uuid.New(), created)
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_Users_Delete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := NewDatastore()
	defer store.Close()

	created, err := store.Users().Create(ctx, dao.User{Username: "gamzee", Password: "honk"})
	if !assert.NoError(err) {
		return
	}

	deleted, err := store.Users().Delete(ctx, created.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created.ID, deleted.ID)

	_, err = store.Users().GetByID(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_Documents_CreateAndGet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := NewDatastore()
	defer store.Close()

	created, err := store.Documents().Create(ctx, dao.Document{
		Name:       "base",
		Source:     "$fg: #fff;",
		TokenCount: 5,
	})
	if !assert.NoError(err) {
		return
	}
	assert.NotEqual(uuid.UUID{}, created.ID)
	assert.False(created.Created.IsZero())

	actual, err := store.Documents().GetByID(ctx, created.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created, actual)

	_, err = store.Documents().GetByID(ctx, uuid.New())
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_Documents_GetAll(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := NewDatastore()
	defer store.Close()

	names := []string{"reset", "layout", "theme"}
	for _, name := range names {
		_, err := store.Documents().Create(ctx, dao.Document{Name: name})
		if !assert.NoError(err) {
			return
		}
	}

	all, err := store.Documents().GetAll(ctx)
	if !assert.NoError(err) {
		return
	}
	assert.Len(all, 3)
}

func Test_Documents_Delete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	store := NewDatastore()
	defer store.Close()

	created, err := store.Documents().Create(ctx, dao.Document{Name: "scratch"})
	if !assert.NoError(err) {
		return
	}

	deleted, err := store.Documents().Delete(ctx, created.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created.ID, deleted.ID)

	_, err = store.Documents().Delete(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
}
