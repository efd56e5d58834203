package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	APIPathPrefix = "/api/v1"
)

var (
	paramTypePats = map[string]string{
		"uuid": "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}",
	}
)

// p is a quick parameter in a URI, made very small to ease readability in route
// listings.
func p(nameType string) string {
	var name string
	var pat string

	parts := strings.SplitN(nameType, ":", 2)
	name = parts[0]
	if len(parts) == 2 {
		// we have a type, if it's a name in the paramTypePats map use that else
		// treat it as a normal pattern
		pat = parts[1]

		if translatedPat, ok := paramTypePats[parts[1]]; ok {
			pat = translatedPat
		}
	}

	if pat == "" {
		return "{" + name + "}"
	}
	return "{" + name + ":" + pat + "}"
}

func (ss SableServer) newRouter() chi.Router {
	r := chi.NewRouter()

	r.Mount(APIPathPrefix, ss.newAPIRouter())

	return r
}

func (ss SableServer) newAPIRouter() chi.Router {
	r := chi.NewRouter()

	r.Mount("/login", ss.newLoginRouter())
	r.Mount("/lex", ss.newLexRouter())
	r.Mount("/documents", ss.newDocumentsRouter())
	r.Get("/info", ss.endpoint(ss.doEndpoint_Info_GET))
	r.HandleFunc("/info/", RedirectNoTrailingSlash)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		jsonNotFound().writeResponse(w, req)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(ss.unauthedDelay)
		jsonMethodNotAllowed(req).writeResponse(w, req)
	})

	return r
}

func (ss SableServer) newLoginRouter() chi.Router {
	r := chi.NewRouter()

	r.Post("/", ss.endpoint(ss.doEndpoint_Login_POST))
	r.Delete("/"+p("id:uuid"), ss.idEndpoint(ss.doEndpoint_LoginID_DELETE))
	r.HandleFunc("/"+p("id:uuid")+"/", RedirectNoTrailingSlash)

	return r
}

func (ss SableServer) newLexRouter() chi.Router {
	r := chi.NewRouter()

	r.Post("/", ss.endpoint(ss.doEndpoint_Lex_POST))

	return r
}

func (ss SableServer) newDocumentsRouter() chi.Router {
	r := chi.NewRouter()

	r.Post("/", ss.endpoint(ss.doEndpoint_Documents_POST))
	r.Get("/", ss.endpoint(ss.doEndpoint_Documents_GET))

	r.Route("/"+p("id:uuid"), func(r chi.Router) {
		r.Get("/", ss.idEndpoint(ss.doEndpoint_DocumentsID_GET))
		r.Delete("/", ss.idEndpoint(ss.doEndpoint_DocumentsID_DELETE))
	})

	return r
}

// endpoint adapts an endpoint func into an http.HandlerFunc, converting any
// panic into an HTTP-500 and applying the unauthed delay to responses that
// indicate the client was not allowed to do something.
func (ss SableServer) endpoint(ep func(req *http.Request) EndpointResult) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)

		result := ep(req)

		if result.status == http.StatusUnauthorized || result.status == http.StatusForbidden {
			// if the user wasn't allowed to do that, make sure they wait for
			// the response
			time.Sleep(ss.unauthedDelay)
		}

		result.writeResponse(w, req)
	}
}

// idEndpoint is like endpoint but for endpoints that operate on a resource
// identified by a "id" URI parameter, which is parsed as a UUID before the
// endpoint func is called.
func (ss SableServer) idEndpoint(ep func(req *http.Request, id uuid.UUID) EndpointResult) http.HandlerFunc {
	return ss.endpoint(func(req *http.Request) EndpointResult {
		idStr := chi.URLParam(req, "id")

		id, err := uuid.Parse(idStr)
		if err != nil {
			return jsonBadRequest("ID is not valid", "invalid ID %q in URI", idStr)
		}

		return ep(req, id)
	})
}

// RedirectNoTrailingSlash is an http.HandlerFunc that redirects to the same
// URL as the request but with no trailing slash.
func RedirectNoTrailingSlash(w http.ResponseWriter, req *http.Request) {
	redirPath := strings.TrimRight(req.URL.Path, "/")
	redirection(redirPath).writeResponse(w, req)
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicRecovered bool) {
	if panicErr := recover(); panicErr != nil {
		textErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		).writeResponse(w, req)
		return true
	}
	return false
}
