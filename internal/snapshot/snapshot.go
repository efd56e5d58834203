// Package snapshot reads and writes binary snapshots of tokenization
// results. A snapshot preserves every field of every token, so a consumer
// can reload a previously-lexed document without access to its source text.
package snapshot

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/sable/lex"
)

// Version is the snapshot format version written by this package. Readers
// reject snapshots with a version newer than this.
const Version = 1

// magic identifies a Sable token snapshot.
var magic = []byte("SBLSNAP")

// binToken adapts lex.Token to the binary marshaling interfaces so it can
// pass through rezi.
type binToken lex.Token

func (bt binToken) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncInt(int(bt.Kind))...)
	data = append(data, rezi.EncString(bt.Value)...)
	data = append(data, rezi.EncInt(bt.Length)...)
	data = append(data, rezi.EncInt(bt.Line)...)
	data = append(data, rezi.EncInt(bt.Column)...)

	return data, nil
}

func (bt *binToken) UnmarshalBinary(data []byte) error {
	var err error
	var bytesRead int
	var kindVal int

	kindVal, bytesRead, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("kind: %w", err)
	}
	bt.Kind = lex.Kind(kindVal)
	data = data[bytesRead:]

	bt.Value, bytesRead, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	data = data[bytesRead:]

	bt.Length, bytesRead, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("length: %w", err)
	}
	data = data[bytesRead:]

	bt.Line, bytesRead, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("line: %w", err)
	}
	data = data[bytesRead:]

	bt.Column, _, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("column: %w", err)
	}

	return nil
}

// Write encodes toks as a snapshot onto w.
func Write(w io.Writer, toks []lex.Token) error {
	data := make([]byte, 0, len(magic))
	data = append(data, magic...)
	data = append(data, rezi.EncInt(Version)...)
	data = append(data, rezi.EncInt(len(toks))...)

	for i := range toks {
		data = append(data, rezi.EncBinary(binToken(toks[i]))...)
	}

	_, err := w.Write(data)
	return err
}

// Read decodes a snapshot from r and returns its tokens. It returns an
// error if the data is not a snapshot, was written by a newer format
// version, or is truncated.
func Read(r io.Reader) ([]lex.Token, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(data) < len(magic) || !bytes.Equal(data[:len(magic)], magic) {
		return nil, fmt.Errorf("not a token snapshot")
	}
	data = data[len(magic):]

	ver, bytesRead, err := rezi.DecInt(data)
	if err != nil {
		return nil, fmt.Errorf("version: %w", err)
	}
	if ver > Version {
		return nil, fmt.Errorf("snapshot format version %d is newer than supported version %d", ver, Version)
	}
	data = data[bytesRead:]

	count, bytesRead, err := rezi.DecInt(data)
	if err != nil {
		return nil, fmt.Errorf("token count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("token count < 0")
	}
	data = data[bytesRead:]

	toks := make([]lex.Token, count)
	for i := 0; i < count; i++ {
		var bt binToken
		bytesRead, err = rezi.DecBinary(data, &bt)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		data = data[bytesRead:]

		toks[i] = lex.Token(bt)
	}

	return toks, nil
}
