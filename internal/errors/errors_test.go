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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{
			name:     "direct decode error",
			err:      ErrDecode,
			sentinel: ErrDecode,
			want:     true,
		},
		{
			name:     "wrapped decode error with line",
			err:      fmt.Errorf("line %d: %w: %w", 12, ErrDecode, errors.New("odd length hex string")),
			sentinel: ErrDecode,
			want:     true,
		},
		{
			name:     "different error type",
			err:      ErrRead,
			sentinel: ErrWrite,
			want:     false,
		},
		{
			name:     "wrapped open error",
			err:      fmt.Errorf("open config.export: %w", ErrOpen),
			sentinel: ErrOpen,
			want:     true,
		},
		{
			name:     "nil error",
			err:      nil,
			sentinel: ErrOpen,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.sentinel)
			if got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.sentinel, got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrOpen, "cannot open file"},
		{ErrRead, "read failure"},
		{ErrWrite, "write failure"},
		{ErrDecode, "malformed hex content"},
		{ErrUnmatchedLine, "unrecognized line at root level"},
		{ErrMissingTrailer, "no END OF EXPORT trailer found"},
		{ErrNoBufferedContent, "no buffered input to save"},
		{ErrChecksumMismatch, "checksum mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"open", fmt.Errorf("open in.export: %w", ErrOpen), ExitIO},
		{"read", fmt.Errorf("line 3: %w", ErrRead), ExitIO},
		{"write", ErrWrite, ExitIO},
		{"decode", fmt.Errorf("line 9: %w: bad", ErrDecode), ExitInvalid},
		{"unmatched", ErrUnmatchedLine, ExitInvalid},
		{"missing trailer", ErrMissingTrailer, ExitInvalid},
		{"mismatch", fmt.Errorf("recorded 00000000: %w", ErrChecksumMismatch), ExitMismatch},
		{"no buffer", ErrNoBufferedContent, ExitGeneral},
		{"unknown", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
