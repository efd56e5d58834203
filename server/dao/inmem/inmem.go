// Package inmem provides an entirely in-memory implementation of dao.Store.
// It is the default backing store of the server and is suitable for testing
// and for runs that do not need persistence across restarts.
package inmem

import (
	"fmt"

	"github.com/dekarrin/sable/server/dao"
)

type store struct {
	users *UsersRepository
	docs  *DocumentsRepository
}

// NewDatastore creates a new in-memory datastore with empty repositories.
func NewDatastore() dao.Store {
	return &store{
		users: NewUsersRepository(),
		docs:  NewDocumentsRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Documents() dao.DocumentRepository {
	return s.docs
}

func (s *store) Close() error {
	var err error

	if nextErr := s.users.Close(); nextErr != nil {
		err = nextErr
	}
	if nextErr := s.docs.Close(); nextErr != nil {
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		} else {
			err = nextErr
		}
	}

	return err
}
