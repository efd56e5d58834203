/*
Sablei starts an interactive Sable lexing session.

It reads lines of Sable stylesheet source from stdin and prints the tokens
each line lexes to, with their positions, until end of input or until the
"QUIT" command is input. If a source file is given with -f, the file is lexed
as a single source text instead and the session ends immediately after.

Usage:

	sablei [flags]

The flags are:

	-version
		Give the current version of Sable and then exit.

	-f/-file [FILE]
		Lex the provided file as a single source text instead of reading
		lines interactively.

	-s/-snapshot [FILE]
		Write every token lexed during the session to a binary snapshot file
		at the given path when the session ends.

	-d/-direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input even if launched in a tty
		with stdin and stdout.

Once a session has started, each line of input is lexed independently. For an
explanation of the session commands, type "HELP" once in a session. To exit,
type "QUIT".
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dekarrin/sable"
	"github.com/dekarrin/sable/internal/version"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitLexError indicates an unsuccessful program execution due to a
	// problem during lexing.
	ExitLexError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the session.
	ExitInitError
)

var (
	returnCode  int   = ExitSuccess
	flagVersion *bool = flag.Bool("version", false, "Gives the version info")
	sourceFile  string
	snapshotOut string
	forceDirect bool
)

func init() {
	const (
		fileUsage        = "lex the given file as one source text instead of reading lines interactively"
		snapshotUsage    = "write all lexed tokens to a binary snapshot file at the given path"
		forceDirectUsage = "force reading directly from stdin instead of going through GNU readline where possible"
	)
	flag.StringVar(&sourceFile, "file", "", fileUsage)
	flag.StringVar(&sourceFile, "f", "", fileUsage+" (shorthand)")
	flag.StringVar(&snapshotOut, "snapshot", "", snapshotUsage)
	flag.StringVar(&snapshotOut, "s", "", snapshotUsage+" (shorthand)")
	flag.BoolVar(&forceDirect, "direct", false, forceDirectUsage)
	flag.BoolVar(&forceDirect, "d", false, forceDirectUsage+" (shorthand)")
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic("unrecoverable panic occured")
		} else {
			os.Exit(returnCode)
		}
	}()

	flag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	// no interactive prompt is wanted when lexing a file
	useDirect := forceDirect || sourceFile != ""

	sess, initErr := sable.NewSession(os.Stdin, os.Stdout, snapshotOut, useDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer sess.Close()

	if sourceFile != "" {
		f, err := os.Open(sourceFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		defer f.Close()

		err = sess.LexStream(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitLexError
		}
		return
	}

	err := sess.RunUntilQuit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitLexError
		return
	}
}
