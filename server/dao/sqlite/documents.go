package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/sable/server/dao"
	"github.com/google/uuid"
)

// DocumentsDB is a SQLite-backed implementation of dao.DocumentRepository.
type DocumentsDB struct {
	db *sql.DB
}

func (repo *DocumentsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		token_count INTEGER NOT NULL,
		created INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (repo *DocumentsDB) Close() error {
	return nil
}

func (repo *DocumentsDB) Create(ctx context.Context, doc dao.Document) (dao.Document, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Document{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO documents (id, name, source, token_count, created) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Document{}, wrapDBError(err)
	}

	now := time.Now()
	_, err = stmt.ExecContext(
		ctx,
		newUUID.String(),
		doc.Name,
		doc.Source,
		doc.TokenCount,
		now.Unix(),
	)
	if err != nil {
		return dao.Document{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *DocumentsDB) GetAll(ctx context.Context) ([]dao.Document, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, name, source, token_count, created FROM documents ORDER BY created, id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Document
	for rows.Next() {
		var doc dao.Document
		var id string
		var created int64

		err = rows.Scan(
			&id,
			&doc.Name,
			&doc.Source,
			&doc.TokenCount,
			&created,
		)
		if err != nil {
			return nil, wrapDBError(err)
		}

		doc.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
		}
		doc.Created = time.Unix(created, 0)

		all = append(all, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}

	return all, nil
}

func (repo *DocumentsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Document, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, name, source, token_count, created FROM documents WHERE id = ?;`, id.String())

	var doc dao.Document
	var idStr string
	var created int64

	err := row.Scan(
		&idStr,
		&doc.Name,
		&doc.Source,
		&doc.TokenCount,
		&created,
	)
	if err != nil {
		return dao.Document{}, wrapDBError(err)
	}

	doc.ID, err = uuid.Parse(idStr)
	if err != nil {
		return dao.Document{}, fmt.Errorf("stored UUID %q is invalid: %w", idStr, err)
	}
	doc.Created = time.Unix(created, 0)

	return doc, nil
}

func (repo *DocumentsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Document, error) {
	doc, err := repo.GetByID(ctx, id)
	if err != nil {
		return dao.Document{}, err
	}

	_, err = repo.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?;`, id.String())
	if err != nil {
		return dao.Document{}, wrapDBError(err)
	}

	return doc, nil
}
