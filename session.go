// file session.go contains a CLI-driven session for reading lines of Sable
// source and lexing them continuously until the user quits.

package sable

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/sable/internal/format"
	"github.com/dekarrin/sable/internal/input"
	"github.com/dekarrin/sable/internal/snapshot"
	"github.com/dekarrin/sable/lex"
)

// Session contains the things needed to run an interactive lexing session
// attached to an input stream and an output stream.
type Session struct {
	in           input.Reader
	out          *bufio.Writer
	snapshotPath string
	toks         []lex.Token
	forceDirect  bool
	running      bool
}

const consoleOutputWidth = 80

// NewSession creates a new session ready to operate on the given input and
// output streams. It will immediately open a buffered reader on the input
// stream and a buffered writer on the output stream.
//
// If nil is given for the input stream, a bufio.Reader is opened on stdin. If
// nil is given for the output stream, a bufio.Writer is opened on stdout.
//
// If snapshotPath is non-empty, every token lexed during the session is
// written to a binary snapshot file at that path when the session ends.
func NewSession(inputStream io.Reader, outputStream io.Writer, snapshotPath string, forceDirectInput bool) (*Session, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	sess := &Session{
		out:          bufio.NewWriter(outputStream),
		snapshotPath: snapshotPath,
		running:      false,
		forceDirect:  forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout

	var err error
	if useReadline {
		sess.in, err = input.NewInteractiveReader("> ")
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		sess.in = input.NewDirectReader(inputStream)
	}

	return sess, nil
}

// Close closes all resources associated with the Session, including any
// readline-related resources created for interactive mode.
func (sess *Session) Close() error {
	if sess.running {
		return fmt.Errorf("cannot close a running session")
	}

	err := sess.in.Close()
	if err != nil {
		return fmt.Errorf("close input reader: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading lines from the streams and lexing them until
// end of input or until the QUIT command is received. Each line is lexed
// independently and its tokens are printed in a table.
func (sess *Session) RunUntilQuit() error {
	introMsg := "Welcome to the Sable lexer\n"
	if sess.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "==========================\n"
	introMsg += "\n"
	introMsg += "Enter source to lex it, HELP for help, or QUIT to exit\n"

	if err := sess.write(introMsg); err != nil {
		return err
	}

	sess.running = true
	// so we dont have to remember to do this on every returned error condition
	defer func() {
		sess.running = false
	}()

	for sess.running {
		line, err := sess.in.ReadLine()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("get input line: %w", err)
		}

		// special check: QUIT and HELP are session commands, not source. they
		// must be the entire line to count.
		if line == "QUIT" {
			sess.running = false
			break
		}
		if line == "HELP" {
			if err := sess.write(helpMessage()); err != nil {
				return err
			}
			continue
		}

		if err := sess.lexLine(line); err != nil {
			return err
		}
	}

	if sess.snapshotPath != "" {
		if err := sess.writeSnapshot(); err != nil {
			return err
		}
	}

	if err := sess.write("Goodbye\n"); err != nil {
		return err
	}

	return nil
}

// LexStream reads the entire input stream and lexes it as a single source
// text rather than line by line, printing the resulting token table. It is
// used for non-interactive operation on files.
func (sess *Session) LexStream(r io.Reader) error {
	lx, err := lex.NewFromReader(r)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	toks, err := lx.All()
	if err != nil {
		return sess.write(format.ErrorText(err, consoleOutputWidth) + "\n")
	}

	sess.toks = append(sess.toks, toks...)

	out := format.TokenTable(toks) + "\n" + format.Summarize(toks) + "\n"
	if err := sess.write(out); err != nil {
		return err
	}

	if sess.snapshotPath != "" {
		if err := sess.writeSnapshot(); err != nil {
			return err
		}
	}

	return nil
}

func (sess *Session) lexLine(line string) error {
	lx := lex.New(line)

	toks, err := lx.All()
	if err != nil {
		return sess.write(format.ErrorText(err, consoleOutputWidth) + "\n")
	}

	sess.toks = append(sess.toks, toks...)

	out := format.TokenTable(toks) + "\n" + format.Summarize(toks) + "\n"
	return sess.write(out)
}

func (sess *Session) writeSnapshot() error {
	f, err := os.Create(sess.snapshotPath)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()

	if err := snapshot.Write(f, sess.toks); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	return nil
}

func (sess *Session) write(s string) error {
	if _, err := sess.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := sess.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

func helpMessage() string {
	return "" +
		"Enter a line of Sable source and it will be lexed into tokens.\n" +
		"Each line is lexed independently of the ones before it.\n" +
		"\n" +
		"HELP - show this message\n" +
		"QUIT - end the session\n"
}
