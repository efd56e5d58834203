package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dekarrin/sable/server/dao"
	"github.com/google/uuid"
)

// DocumentsRepository is an in-memory implementation of
// dao.DocumentRepository.
type DocumentsRepository struct {
	mtx  sync.Mutex
	docs map[uuid.UUID]dao.Document
}

// NewDocumentsRepository creates a new, empty DocumentsRepository.
func NewDocumentsRepository() *DocumentsRepository {
	return &DocumentsRepository{
		docs: make(map[uuid.UUID]dao.Document),
	}
}

func (repo *DocumentsRepository) Close() error {
	return nil
}

func (repo *DocumentsRepository) Create(ctx context.Context, doc dao.Document) (dao.Document, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Document{}, fmt.Errorf("could not generate ID: %w", err)
	}

	doc.ID = newUUID
	doc.Created = time.Now()

	repo.docs[doc.ID] = doc

	return doc, nil
}

func (repo *DocumentsRepository) GetAll(ctx context.Context) ([]dao.Document, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	all := make([]dao.Document, 0, len(repo.docs))
	for k := range repo.docs {
		all = append(all, repo.docs[k])
	}

	// map iteration order is random; give callers a stable one
	sort.Slice(all, func(i, j int) bool {
		if all[i].Created.Equal(all[j].Created) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].Created.Before(all[j].Created)
	})

	return all, nil
}

func (repo *DocumentsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Document, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	doc, ok := repo.docs[id]
	if !ok {
		return dao.Document{}, dao.ErrNotFound
	}

	return doc, nil
}

func (repo *DocumentsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Document, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	doc, ok := repo.docs[id]
	if !ok {
		return dao.Document{}, dao.ErrNotFound
	}

	delete(repo.docs, id)

	return doc, nil
}
