package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// EndpointResult is the outcome of one endpoint call, carried from the
// endpoint func to the HTTP layer that renders it. internalMsg is logged
// server-side only and is never shown to the client.
type EndpointResult struct {
	isErr       bool
	isJSON      bool
	status      int
	internalMsg string
	resp        interface{}
	hdrs        [][2]string
}

// Every json* constructor takes an optional internal log message as a format
// string plus args; when none is given a generic one for the status is used.
// The message is for the server log only and never reaches the client.

// jsonOK returns an EndpointResult containing an HTTP-200 with the given
// response body.
func jsonOK(respObj interface{}, internalMsg ...interface{}) EndpointResult {
	return jsonResponse(http.StatusOK, respObj, logMsg("OK", internalMsg))
}

// jsonNoContent returns an EndpointResult containing an HTTP-204.
func jsonNoContent(internalMsg ...interface{}) EndpointResult {
	return jsonResponse(http.StatusNoContent, nil, logMsg("no content", internalMsg))
}

// jsonCreated returns an EndpointResult containing an HTTP-201 with the
// given response body.
func jsonCreated(respObj interface{}, internalMsg ...interface{}) EndpointResult {
	return jsonResponse(http.StatusCreated, respObj, logMsg("created", internalMsg))
}

// jsonBadRequest returns an EndpointResult containing an HTTP-400. userMsg
// is shown to the client.
func jsonBadRequest(userMsg string, internalMsg ...interface{}) EndpointResult {
	return jsonErr(http.StatusBadRequest, userMsg, logMsg("bad request", internalMsg))
}

// jsonMethodNotAllowed returns an EndpointResult containing an HTTP-405
// derived from the method and path of req.
func jsonMethodNotAllowed(req *http.Request, internalMsg ...interface{}) EndpointResult {
	userMsg := fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path)
	return jsonErr(http.StatusMethodNotAllowed, userMsg, logMsg("method not allowed", internalMsg))
}

// jsonNotFound returns an EndpointResult containing an HTTP-404.
func jsonNotFound(internalMsg ...interface{}) EndpointResult {
	return jsonErr(http.StatusNotFound, "The requested resource was not found", logMsg("not found", internalMsg))
}

// jsonForbidden returns an EndpointResult containing an HTTP-403.
func jsonForbidden(internalMsg ...interface{}) EndpointResult {
	return jsonErr(http.StatusForbidden, "You don't have permission to do that", logMsg("forbidden", internalMsg))
}

// jsonUnauthorized returns an EndpointResult containing an HTTP-401 along
// with the proper WWW-Authenticate header. If userMsg is empty a generic
// message is shown to the client.
func jsonUnauthorized(userMsg string, internalMsg ...interface{}) EndpointResult {
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}

	return jsonErr(http.StatusUnauthorized, userMsg, logMsg("unauthorized", internalMsg)).
		withHeader("WWW-Authenticate", `Basic realm="Sable server", charset="utf-8"`)
}

// jsonInternalServerError returns an EndpointResult containing an HTTP-500.
// The client always sees a generic message regardless of internalMsg.
func jsonInternalServerError(internalMsg ...interface{}) EndpointResult {
	return jsonErr(http.StatusInternalServerError, "An internal server error occurred", logMsg("internal server error", internalMsg))
}

// redirection returns an EndpointResult containing an HTTP-308 response that
// redirects the client to the given URI.
func redirection(uri string) EndpointResult {
	return EndpointResult{
		status:      http.StatusPermanentRedirect,
		internalMsg: fmt.Sprintf("redirect to %s", uri),
		resp:        uri,
		hdrs:        [][2]string{{"Location", uri}},
	}
}

// logMsg renders the optional internal-message arguments of a json*
// constructor, falling back to def when none were given. The first argument
// must be a string and is used as the format string for the rest.
func logMsg(def string, msgAndArgs []interface{}) string {
	if len(msgAndArgs) == 0 {
		return def
	}
	return fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
}

// if status is http.StatusNoContent, respObj will not be read and may be
// nil. Otherwise, respObj MUST NOT be nil.
func jsonResponse(status int, respObj interface{}, internalMsg string) EndpointResult {
	return EndpointResult{
		isJSON:      true,
		status:      status,
		internalMsg: internalMsg,
		resp:        respObj,
	}
}

func jsonErr(status int, userMsg, internalMsg string) EndpointResult {
	return EndpointResult{
		isJSON:      true,
		isErr:       true,
		status:      status,
		internalMsg: internalMsg,
		resp: ErrorResponse{
			Error:  userMsg,
			Status: status,
		},
	}
}

// textErr is like jsonErr but it avoids JSON encoding of any kind and writes
// the output as plain text.
func textErr(status int, userMsg, internalMsg string) EndpointResult {
	return EndpointResult{
		isErr:       true,
		status:      status,
		internalMsg: internalMsg,
		resp:        userMsg,
	}
}

// withHeader returns a copy of the result that carries the given header in
// addition to any it already had.
func (r EndpointResult) withHeader(name, val string) EndpointResult {
	// full slice expression so appends on the copy never reach the original
	r.hdrs = append(r.hdrs[:len(r.hdrs):len(r.hdrs)], [2]string{name, val})
	return r
}

func (r EndpointResult) writeResponse(w http.ResponseWriter, req *http.Request) {
	// if this hasn't been properly created, output error directly and do not
	// try to read properties
	if r.status == 0 {
		logHttpResponse("ERROR", req, http.StatusInternalServerError, "endpoint result was never populated")
		http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
		return
	}

	var respBytes []byte
	if r.status != http.StatusNoContent {
		if r.isJSON {
			var err error
			respBytes, err = json.Marshal(r.resp)
			if err != nil {
				jsonErr(r.status, "An internal server error occurred", "could not marshal JSON response: "+err.Error()).writeResponse(w, req)
				return
			}
		} else {
			respBytes = []byte(fmt.Sprintf("%v", r.resp))
		}
	}

	level := "INFO"
	if r.isErr {
		level = "ERROR"
	}
	logHttpResponse(level, req, r.status, r.internalMsg)

	contentType := "text/plain; charset=utf-8"
	if r.isJSON {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")

	for i := range r.hdrs {
		w.Header().Set(r.hdrs[i][0], r.hdrs[i][1])
	}

	w.WriteHeader(r.status)

	if r.status != http.StatusNoContent {
		w.Write(respBytes)
	}
}

func logHttpResponse(level string, req *http.Request, respStatus int, msg string) {
	if len(level) > 5 {
		level = level[0:5]
	}

	for len(level) < 5 {
		level += " "
	}

	// we don't really care about the ephemeral port from the client end
	remoteIP, _, _ := strings.Cut(req.RemoteAddr, ":")

	log.Printf("%s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, respStatus, msg)
}
