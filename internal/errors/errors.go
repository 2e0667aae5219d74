// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines sentinel errors for consistent error handling across the application.
// Every failure raised while scanning or rewriting an export file wraps exactly one of these
// kinds, and the CLI maps each kind to a specific exit code for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrOpen indicates a source or destination path could not be opened.
	// Maps to exit code 3.
	ErrOpen = errors.New("cannot open file")

	// ErrRead indicates an I/O failure while reading the export stream.
	// Maps to exit code 3.
	ErrRead = errors.New("read failure")

	// ErrWrite indicates an I/O failure while writing the rewritten export.
	// Maps to exit code 3.
	ErrWrite = errors.New("write failure")

	// ErrDecode indicates malformed hexadecimal content inside a BINFILE section.
	// Maps to exit code 2.
	ErrDecode = errors.New("malformed hex content")

	// ErrUnmatchedLine indicates a root level line that matches no known pattern.
	// Only raised when strict root validation is enabled. Maps to exit code 2.
	ErrUnmatchedLine = errors.New("unrecognized line at root level")

	// ErrMissingTrailer indicates the input ended without an END OF EXPORT line.
	// Maps to exit code 2.
	ErrMissingTrailer = errors.New("no END OF EXPORT trailer found")

	// ErrNoBufferedContent indicates a save was requested but no rewritten
	// content was captured by a previous load. Maps to exit code 1.
	ErrNoBufferedContent = errors.New("no buffered input to save")

	// ErrChecksumMismatch indicates the recorded checksum differs from the
	// computed one. Only returned in check mode. Maps to exit code 4.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Exit codes returned by the CLI.
const (
	ExitOK       = 0
	ExitGeneral  = 1
	ExitInvalid  = 2
	ExitIO       = 3
	ExitMismatch = 4
)

// ExitCode maps an error to the process exit code the CLI should use.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, ErrChecksumMismatch) {
		return ExitMismatch
	}

	if errors.Is(err, ErrDecode) ||
		errors.Is(err, ErrUnmatchedLine) ||
		errors.Is(err, ErrMissingTrailer) {
		return ExitInvalid
	}

	if errors.Is(err, ErrOpen) ||
		errors.Is(err, ErrRead) ||
		errors.Is(err, ErrWrite) {
		return ExitIO
	}

	return ExitGeneral
}
