package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/sable/internal/version"
	"github.com/dekarrin/sable/lex"
	"github.com/dekarrin/sable/server/dao"
	"github.com/google/uuid"
)

// POST /login: create a new login with token
func (ss SableServer) doEndpoint_Login_POST(req *http.Request) EndpointResult {
	loginData := LoginRequest{}
	err := parseJSON(req, &loginData)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	if loginData.Username == "" {
		return jsonBadRequest("username: property is empty or missing from request", "empty user")
	}
	if loginData.Password == "" {
		return jsonBadRequest("password: property is empty or missing from request", "empty password")
	}

	user, err := ss.Login(req.Context(), loginData.Username, loginData.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			return jsonUnauthorized(err.Error())
		} else {
			return jsonInternalServerError(err.Error())
		}
	}

	// password is valid, generate token for user and return it.
	tok, err := ss.generateJWT(user)
	if err != nil {
		return jsonInternalServerError("could not generate JWT: " + err.Error())
	}

	resp := LoginResponse{
		Token:  tok,
		UserID: user.ID.String(),
	}
	return jsonCreated(resp, "user '"+user.Username+"' successfully logged in")
}

// DELETE /login/{id}: remove a login for some user (log out). Requires auth for
// access at all. Requires auth by user with role Admin to log out anybody but
// self.
func (ss SableServer) doEndpoint_LoginID_DELETE(req *http.Request, id uuid.UUID) EndpointResult {
	user, err := ss.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	// is the user trying to delete someone else's login? they'd betta be the
	// admin if so!
	if id != user.ID && user.Role != dao.Admin {
		var otherUserStr string
		otherUser, err := ss.db.Users().GetByID(req.Context(), id)
		// if there was another user, find out now
		if err != nil {
			otherUserStr = id.String()
		} else {
			otherUserStr = "'" + otherUser.Username + "'"
		}

		return jsonForbidden("user '%s' (role %s) logout of user %s: forbidden", user.Username, user.Role, otherUserStr)
	}

	loggedOutUser, err := ss.Logout(req.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		}
		return jsonInternalServerError("could not log out user: " + err.Error())
	}

	var otherStr string
	if id != user.ID {
		otherStr = "user '" + loggedOutUser.Username + "'"
	} else {
		otherStr = "self"
	}

	return jsonNoContent("user '%s' successfully logged out %s", user.Username, otherStr)
}

// GET /info: get version info on the lexer and server.
func (ss SableServer) doEndpoint_Info_GET(req *http.Request) EndpointResult {
	var resp InfoResponse
	resp.Version.Server = version.ServerCurrent
	resp.Version.Lexer = version.Current

	return jsonOK(resp, "version information was requested")
}

// POST /lex: lex a source text and return its tokens (no auth needed). If the
// source contains a character no token can start with, the response still has
// status 200 and carries the tokens read up to that point alongside the error.
func (ss SableServer) doEndpoint_Lex_POST(req *http.Request) EndpointResult {
	lexData := LexRequest{}
	err := parseJSON(req, &lexData)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	toks, lexErr := ss.LexSource(lexData.Source)

	resp := LexResponse{
		Tokens: make([]TokenModel, len(toks)),
	}
	for i := range toks {
		resp.Tokens[i] = daoTokenToModel(toks[i])
	}

	if lexErr != nil {
		var synErr *lex.SyntaxError
		if !errors.As(lexErr, &synErr) {
			return jsonInternalServerError("lex source: " + lexErr.Error())
		}

		resp.Error = &LexErrorModel{
			Message: synErr.Error(),
			Line:    synErr.Line(),
			Column:  synErr.Position(),
			Source:  synErr.SourceLineWithCursor(),
		}
		return jsonOK(resp, "lexed %d token(s) before error at line %d", len(toks), synErr.Line())
	}

	return jsonOK(resp, "lexed %d token(s)", len(toks))
}

// POST /documents: store a source text after lexing it (auth required)
func (ss SableServer) doEndpoint_Documents_POST(req *http.Request) EndpointResult {
	user, err := ss.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	var createDoc DocumentCreationRequest
	err = parseJSON(req, &createDoc)
	if err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}
	if createDoc.Name == "" {
		return jsonBadRequest("name: property is empty or missing from request", "empty name")
	}

	newDoc, err := ss.CreateDocument(req.Context(), createDoc.Name, createDoc.Source)
	if err != nil {
		if errors.Is(err, ErrBadArgument) {
			return jsonBadRequest(err.Error(), err.Error())
		}
		return jsonInternalServerError(err.Error())
	}

	resp := daoDocumentToModel(newDoc, true)

	return jsonCreated(resp, "document '%s' (%s) created by user '%s'", resp.Name, resp.ID, user.Username)
}

// GET /documents: get info on every stored document (no auth needed). Sources
// are omitted; fetch a single document to get its source.
func (ss SableServer) doEndpoint_Documents_GET(req *http.Request) EndpointResult {
	docs, err := ss.GetAllDocuments(req.Context())
	if err != nil {
		return jsonInternalServerError(err.Error())
	}

	resp := DocumentsIndexResponse{
		Documents: make([]DocumentModel, len(docs)),
	}
	for i := range docs {
		resp.Documents[i] = daoDocumentToModel(docs[i], false)
	}

	return jsonOK(resp, "listed %d document(s)", len(docs))
}

// GET /documents/{id}: get a stored document with its source and tokens (no
// auth needed). The tokens are not persisted; the stored source is lexed
// again on demand.
func (ss SableServer) doEndpoint_DocumentsID_GET(req *http.Request, id uuid.UUID) EndpointResult {
	doc, err := ss.GetDocument(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		} else if errors.Is(err, ErrBadArgument) {
			return jsonBadRequest(err.Error(), err.Error())
		}
		return jsonInternalServerError("could not get document: " + err.Error())
	}

	resp := daoDocumentToModel(doc, true)

	// sources are verified to lex at creation, so a failure here means the
	// stored source was tampered with
	toks, err := ss.LexSource(doc.Source)
	if err != nil {
		return jsonInternalServerError("stored document %s does not lex: %s", resp.ID, err.Error())
	}
	resp.Tokens = make([]TokenModel, len(toks))
	for i := range toks {
		resp.Tokens[i] = daoTokenToModel(toks[i])
	}

	return jsonOK(resp, "document '%s' (%s) requested", resp.Name, resp.ID)
}

// DELETE /documents/{id}: delete a stored document (auth required)
func (ss SableServer) doEndpoint_DocumentsID_DELETE(req *http.Request, id uuid.UUID) EndpointResult {
	user, err := ss.requireJWT(req.Context(), req)
	if err != nil {
		return jsonUnauthorized(err.Error())
	}

	deletedDoc, err := ss.DeleteDocument(req.Context(), id.String())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return jsonNotFound()
		} else if errors.Is(err, ErrBadArgument) {
			return jsonBadRequest(err.Error(), err.Error())
		}
		return jsonInternalServerError("could not delete document: " + err.Error())
	}

	return jsonNoContent("user '%s' successfully deleted document '%s'", user.Username, deletedDoc.Name)
}

func daoTokenToModel(tok lex.Token) TokenModel {
	return TokenModel{
		Kind:   tok.Kind.String(),
		Value:  tok.Value,
		Length: tok.Length,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

func daoDocumentToModel(doc dao.Document, includeSource bool) DocumentModel {
	m := DocumentModel{
		URI:        APIPathPrefix + "/documents/" + doc.ID.String(),
		ID:         doc.ID.String(),
		Name:       doc.Name,
		TokenCount: doc.TokenCount,
		Created:    doc.Created.Format(time.RFC3339),
	}

	if includeSource {
		m.Source = doc.Source
	}

	return m
}

// v must be a pointer to a type.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")

	if strings.ToLower(contentType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}

	err = json.Unmarshal(bodyData, v)
	if err != nil {
		return fmt.Errorf("malformed JSON in request")
	}

	return nil
}
