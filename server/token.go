package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dekarrin/sable/server/dao"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	jwtIssuer     = "sable"
	tokenLifetime = time.Hour
)

// signingKey builds the HMAC key used for the given user's tokens. Folding
// the password hash and last-logout time into the key means a password
// change or a logout invalidates every token issued before it, without the
// server keeping any token state.
func (ss SableServer) signingKey(u dao.User) []byte {
	logoutStamp := strconv.FormatInt(u.LastLogoutTime.Unix(), 10)

	key := make([]byte, 0, len(ss.jwtSecret)+len(u.Password)+len(logoutStamp))
	key = append(key, ss.jwtSecret...)
	key = append(key, u.Password...)
	key = append(key, logoutStamp...)

	return key
}

// generateJWT issues a signed token identifying u, valid for tokenLifetime.
func (ss SableServer) generateJWT(u dao.User) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    jwtIssuer,
		Subject:   u.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(ss.signingKey(u))
}

// requireJWT authenticates the request from its Authorization header and
// returns the user the token identifies. The user's current persisted state
// decides the expected signature, so tokens issued before the user's last
// logout fail verification here.
func (ss SableServer) requireJWT(ctx context.Context, req *http.Request) (dao.User, error) {
	tokStr, err := bearerToken(req)
	if err != nil {
		return dao.User{}, err
	}

	var user dao.User

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}

		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject UUID: %w", err)
		}

		user, err = ss.db.Users().GetByID(ctx, id)
		if err != nil {
			if err == dao.ErrNotFound {
				return nil, fmt.Errorf("subject does not exist")
			}
			return nil, fmt.Errorf("subject could not be validated")
		}

		return ss.signingKey(user), nil
	}

	_, err = jwt.Parse(
		tokStr,
		keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(jwtIssuer),
		jwt.WithLeeway(time.Minute),
	)
	if err != nil {
		return dao.User{}, err
	}

	return user, nil
}

// bearerToken pulls the token out of a "Bearer" Authorization header.
func bearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	scheme, tok, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return strings.TrimSpace(tok), nil
}
