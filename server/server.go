// Package server provides an HTTP REST frontend to Sable source lexing, with
// simple persistence of lexed documents and JWT-secured logins.
package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dekarrin/sable/lex"
	"github.com/dekarrin/sable/server/dao"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCredentials = errors.New("the supplied username/password combination is incorrect")
	ErrPermissions    = errors.New("you don't have permission to do that")
	ErrNotFound       = errors.New("the requested entity could not be found")
	ErrAlreadyExists  = errors.New("resource with same identifying information already exists")
	ErrDB             = errors.New("an error occured with the DB")
	ErrBadArgument    = errors.New("one or more of the arguments is invalid")
	ErrBodyUnmarshal  = errors.New("malformed data in request")
)

// server:
//  X POST   /login           - accepts user and password and returns a jwt.
//  X DELETE /login/{id}      - ends user authentication session and destroys the jwt.
//  X POST   /lex             - lexes a source text and returns its tokens (auth not required)
//  X POST   /documents       - stores a source text after lexing it (auth required)
//  X GET    /documents       - gets info on all stored documents (auth not required)
//  X GET    /documents/{id}  - gets a stored document with its source (auth not required)
//  X DELETE /documents/{id}  - deletes a stored document (auth required)
//  X GET    /info            - gets version info on the server and the lexer itself.
//

// SableServer is an HTTP REST server that provides Sable lexing and
// associated resources. The zero-value of a SableServer should not be used
// directly; call New() to get one ready for use.
type SableServer struct {
	router        chi.Router
	db            dao.Store
	unauthedDelay time.Duration
	jwtSecret     []byte
}

// New creates a new SableServer from the given configuration. Any values not
// set in cfg are first filled with their defaults.
func New(cfg Config) (SableServer, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return SableServer{}, fmt.Errorf("config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return SableServer{}, fmt.Errorf("connect db: %w", err)
	}

	ss := SableServer{
		db:            db,
		jwtSecret:     cfg.TokenSecret,
		unauthedDelay: cfg.UnauthDelay(),
	}

	ss.router = ss.newRouter()

	return ss, nil
}

// ServeForever begins listening on the given address and port for HTTP REST
// client requests. If address is kept as "", it will default to "localhost".
// If port is less than 1, it will default to 8080.
func (ss SableServer) ServeForever(address string, port int) {
	if address == "" {
		address = "localhost"
	}
	if port < 1 {
		port = 8080
	}

	listenAddress := fmt.Sprintf("%s:%d", address, port)
	log.Printf("INFO  Listening on %s", listenAddress)
	log.Fatalf("FATAL %v", http.ListenAndServe(listenAddress, ss.router))
}

// ServeHTTP makes SableServer an http.Handler so it can be mounted in a
// larger mux or driven directly in tests.
func (ss SableServer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ss.router.ServeHTTP(w, req)
}

// Close releases any persistence resources held by the server.
func (ss SableServer) Close() error {
	return ss.db.Close()
}

// Login verifies the provided username and password against the existing user
// in persistence and returns that user if they match. Returns the user entity
// from the persistence layer that the username and password are valid for.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the credentials do not match
// a user or if the password is incorrect, it will match ErrBadCredentials. If
// the error occured due to an unexpected problem with the DB, it will match
// ErrDB.
func (ss SableServer) Login(ctx context.Context, username string, password string) (dao.User, error) {
	user, err := ss.db.Users().GetByUsername(ctx, username)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, ErrBadCredentials
		}
		return dao.User{}, wrapDBError(err)
	}

	// verify password
	bcryptHash, err := base64.StdEncoding.DecodeString(user.Password)
	if err != nil {
		return dao.User{}, err
	}

	err = bcrypt.CompareHashAndPassword(bcryptHash, []byte(password))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return dao.User{}, ErrBadCredentials
		}
		return dao.User{}, wrapDBError(err)
	}

	return user, nil
}

// Logout marks the user with the given ID as having logged out, invalidating
// any login that may be active. Returns the user entity that was logged out.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the user doesn't exist, it
// will match ErrNotFound. If the error occured due to an unexpected problem
// with the DB, it will match ErrDB.
func (ss SableServer) Logout(ctx context.Context, who uuid.UUID) (dao.User, error) {
	existing, err := ss.db.Users().GetByID(ctx, who)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.User{}, ErrNotFound
		}
		return dao.User{}, newError("could not retrieve user", err, ErrDB)
	}

	existing.LastLogoutTime = time.Now()

	updated, err := ss.db.Users().Update(ctx, existing.ID, existing)
	if err != nil {
		return dao.User{}, newError("could not update user", err, ErrDB)
	}

	return updated, nil
}

// CreateUser creates a new user with the given username and password combo.
// Returns the newly-created user as it exists after creation.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If a user with that username is
// already present, it will match ErrAlreadyExists. If the error occured due to
// an unexpected problem with the DB, it will match ErrDB. Finally, if one of
// the arguments is invalid, it will match ErrBadArgument.
func (ss SableServer) CreateUser(ctx context.Context, username, password string, role dao.Role) (dao.User, error) {
	if username == "" {
		return dao.User{}, newError("username cannot be blank", ErrBadArgument)
	}
	if password == "" {
		return dao.User{}, newError("password cannot be blank", ErrBadArgument)
	}

	_, err := ss.db.Users().GetByUsername(ctx, username)
	if err == nil {
		return dao.User{}, newError("a user with that username already exists", ErrAlreadyExists)
	} else if err != dao.ErrNotFound {
		return dao.User{}, wrapDBError(err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		if err == bcrypt.ErrPasswordTooLong {
			return dao.User{}, newError("password is too long", err, ErrBadArgument)
		} else {
			return dao.User{}, newError("password could not be encrypted", err)
		}
	}

	storedPass := base64.StdEncoding.EncodeToString(passHash)

	newUser := dao.User{
		Username: username,
		Password: storedPass,
		Role:     role,
	}

	user, err := ss.db.Users().Create(ctx, newUser)
	if err != nil {
		if err == dao.ErrConstraintViolation {
			return dao.User{}, ErrAlreadyExists
		}
		return dao.User{}, newError("could not create user", err, ErrDB)
	}

	return user, nil
}

// LexSource scans the given Sable source and returns every token read from it.
// If the source contains a character that no token can start with, the tokens
// read up to that point are returned along with a non-nil *lex.SyntaxError
// describing the problem.
func (ss SableServer) LexSource(source string) ([]lex.Token, error) {
	lx := lex.New(source)

	var toks []lex.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return toks, err
		}
		if tok == nil {
			return toks, nil
		}
		toks = append(toks, *tok)
	}
}

// CreateDocument lexes the given source and stores it in persistence under the
// given name along with the count of tokens it lexed to. Returns the document
// as it exists after creation.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If the name is blank or the
// source does not lex, it will match ErrBadArgument. If the error occured due
// to an unexpected problem with the DB, it will match ErrDB.
func (ss SableServer) CreateDocument(ctx context.Context, name, source string) (dao.Document, error) {
	if name == "" {
		return dao.Document{}, newError("name cannot be blank", ErrBadArgument)
	}

	toks, err := ss.LexSource(source)
	if err != nil {
		return dao.Document{}, newError("source does not lex: "+err.Error(), err, ErrBadArgument)
	}

	newDoc := dao.Document{
		Name:       name,
		Source:     source,
		TokenCount: len(toks),
	}

	doc, err := ss.db.Documents().Create(ctx, newDoc)
	if err != nil {
		return dao.Document{}, newError("could not create document", err, ErrDB)
	}

	return doc, nil
}

// GetAllDocuments returns all documents currently in persistence.
func (ss SableServer) GetAllDocuments(ctx context.Context) ([]dao.Document, error) {
	docs, err := ss.db.Documents().GetAll(ctx)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return docs, nil
}

// GetDocument returns the document with the given ID.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no document with that ID
// exists, it will match ErrNotFound. If the error occured due to an unexpected
// problem with the DB, it will match ErrDB. Finally, if there is an issue with
// one of the arguments, it will match ErrBadArgument.
func (ss SableServer) GetDocument(ctx context.Context, id string) (dao.Document, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Document{}, newError("ID is not valid", ErrBadArgument)
	}

	doc, err := ss.db.Documents().GetByID(ctx, uuidID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.Document{}, ErrNotFound
		}
		return dao.Document{}, newError("could not get document", err, ErrDB)
	}

	return doc, nil
}

// DeleteDocument deletes the document with the given ID. It returns the
// deleted document just after it was deleted.
//
// The returned error, if non-nil, will return true for various calls to
// errors.Is depending on what caused the error. If no document with that ID
// exists, it will match ErrNotFound. If the error occured due to an unexpected
// problem with the DB, it will match ErrDB. Finally, if there is an issue with
// one of the arguments, it will match ErrBadArgument.
func (ss SableServer) DeleteDocument(ctx context.Context, id string) (dao.Document, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Document{}, newError("ID is not valid", ErrBadArgument)
	}

	doc, err := ss.db.Documents().Delete(ctx, uuidID)
	if err != nil {
		if err == dao.ErrNotFound {
			return dao.Document{}, ErrNotFound
		}
		return dao.Document{}, newError("could not delete document", err, ErrDB)
	}

	return doc, nil
}

// Error is an error in the server.
type Error struct {
	msg   string
	cause []error
}

func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}

	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}

	return e.msg
}

func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

func (e Error) Is(target error) bool {
	for i := range e.cause {
		if e.cause[i] == target {
			return true
		}
	}
	return false
}

func wrapDBError(err error) Error {
	return Error{
		cause: []error{err, ErrDB},
	}
}

func newError(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}
