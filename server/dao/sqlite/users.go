package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/sable/server/dao"
	"github.com/google/uuid"
)

// UsersDB is a SQLite-backed implementation of dao.UserRepository.
type UsersDB struct {
	db *sql.DB
}

func (repo *UsersDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role INTEGER NOT NULL,
		created INTEGER NOT NULL,
		last_logout_time INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (repo *UsersDB) Close() error {
	return nil
}

func (repo *UsersDB) Create(ctx context.Context, user dao.User) (dao.User, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.User{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO users (id, username, password, role, created, last_logout_time) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}

	now := time.Now()
	_, err = stmt.ExecContext(
		ctx,
		newUUID.String(),
		user.Username,
		user.Password,
		int(user.Role),
		now.Unix(),
		now.Unix(),
	)
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *UsersDB) GetByID(ctx context.Context, id uuid.UUID) (dao.User, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, username, password, role, created, last_logout_time FROM users WHERE id = ?;`, id.String())
	return repo.scanUser(row)
}

func (repo *UsersDB) GetByUsername(ctx context.Context, username string) (dao.User, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, username, password, role, created, last_logout_time FROM users WHERE username = ?;`, username)
	return repo.scanUser(row)
}

func (repo *UsersDB) Update(ctx context.Context, id uuid.UUID, user dao.User) (dao.User, error) {
	res, err := repo.db.ExecContext(
		ctx,
		`UPDATE users SET username = ?, password = ?, role = ?, last_logout_time = ? WHERE id = ?;`,
		user.Username,
		user.Password,
		int(user.Role),
		user.LastLogoutTime.Unix(),
		id.String(),
	)
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}

	updated, err := res.RowsAffected()
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}
	if updated < 1 {
		return dao.User{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, id)
}

func (repo *UsersDB) Delete(ctx context.Context, id uuid.UUID) (dao.User, error) {
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return dao.User{}, err
	}

	_, err = repo.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?;`, id.String())
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}

	return user, nil
}

func (repo *UsersDB) scanUser(row *sql.Row) (dao.User, error) {
	var user dao.User
	var id string
	var role int
	var created int64
	var logoutTime int64

	err := row.Scan(
		&id,
		&user.Username,
		&user.Password,
		&role,
		&created,
		&logoutTime,
	)
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}

	user.ID, err = uuid.Parse(id)
	if err != nil {
		return dao.User{}, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	user.Role = dao.Role(role)
	user.Created = time.Unix(created, 0)
	user.LastLogoutTime = time.Unix(logoutTime, 0)

	return user, nil
}
