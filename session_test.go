package sable

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dekarrin/sable/internal/snapshot"
	"github.com/stretchr/testify/assert"
)

func Test_Session_RunUntilQuit(t *testing.T) {
	assert := assert.New(t)

	in := strings.NewReader("$fg: #fff;\nQUIT\n")
	out := &bytes.Buffer{}

	sess, err := NewSession(in, out, "", false)
	if !assert.NoError(err) {
		return
	}
	defer sess.Close()

	err = sess.RunUntilQuit()
	if !assert.NoError(err) {
		return
	}

	output := out.String()
	assert.Contains(output, "variable")
	assert.Contains(output, "color")
	assert.Contains(output, "5 token(s)")
	assert.Contains(output, "Goodbye")
}

func Test_Session_RunUntilQuit_lexError(t *testing.T) {
	assert := assert.New(t)

	in := strings.NewReader("a ` b\nQUIT\n")
	out := &bytes.Buffer{}

	sess, err := NewSession(in, out, "", false)
	if !assert.NoError(err) {
		return
	}
	defer sess.Close()

	err = sess.RunUntilQuit()
	if !assert.NoError(err) {
		return
	}

	// the error is reported but the session keeps going
	output := out.String()
	assert.Contains(output, "syntax error")
	assert.Contains(output, "Goodbye")
}

func Test_Session_snapshot(t *testing.T) {
	assert := assert.New(t)

	snapPath := filepath.Join(t.TempDir(), "session.sbl")

	in := strings.NewReader("a: 1;\nQUIT\n")
	out := &bytes.Buffer{}

	sess, err := NewSession(in, out, snapPath, false)
	if !assert.NoError(err) {
		return
	}
	defer sess.Close()

	err = sess.RunUntilQuit()
	if !assert.NoError(err) {
		return
	}

	f, err := os.Open(snapPath)
	if !assert.NoError(err) {
		return
	}
	defer f.Close()

	toks, err := snapshot.Read(f)
	if !assert.NoError(err) {
		return
	}
	if assert.Len(toks, 5) {
		assert.Equal("a", toks[0].Value)
	}
}

func Test_Session_LexStream(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}

	sess, err := NewSession(strings.NewReader(""), out, "", true)
	if !assert.NoError(err) {
		return
	}
	defer sess.Close()

	err = sess.LexStream(strings.NewReader("@media screen {\n}\n"))
	if !assert.NoError(err) {
		return
	}

	output := out.String()
	assert.Contains(output, "atrule")
	assert.Contains(output, "media")
}
