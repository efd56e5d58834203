package server

// note that these are *not* the DAO models; those are distinct and closer to
// the DB format they are in. Rather these are the models that are received from
// and sent to the client.

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

type InfoResponse struct {
	Version struct {
		Server string `json:"server"`
		Lexer  string `json:"lexer"`
	} `json:"version"`
}

type LexRequest struct {
	Source string `json:"source"`
}

type TokenModel struct {
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Length int    `json:"length"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type LexErrorModel struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Source  string `json:"source_line,omitempty"`
}

type LexResponse struct {
	Tokens []TokenModel   `json:"tokens"`
	Error  *LexErrorModel `json:"error,omitempty"`
}

type DocumentCreationRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

type DocumentModel struct {
	URI        string       `json:"uri"`
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Source     string       `json:"source,omitempty"`
	TokenCount int          `json:"token_count"`
	Created    string       `json:"created"`
	Tokens     []TokenModel `json:"tokens,omitempty"`
}

type DocumentsIndexResponse struct {
	Documents []DocumentModel `json:"documents"`
}

type UserModel struct {
	URI      string `json:"uri"`
	ID       string `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}
