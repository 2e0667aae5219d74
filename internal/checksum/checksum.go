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

// Package checksum implements the running CRC-32 register used by export
// files. The register uses the reflected IEEE polynomial 0xEDB88320, the same
// variant zlib exposes as crc32(), and starts at zero.
package checksum

import (
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"
)

// Format selects how a checksum value is rendered as text.
type Format string

const (
	// FormatUpper renders 8 uppercase hex digits, zero padded. This is the
	// form the firmware writes into the trailer.
	FormatUpper Format = "upper"

	// FormatLower renders lowercase hex digits without padding.
	FormatLower Format = "lower"
)

// ParseFormat converts a configuration string into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatUpper, FormatLower:
		return f, nil
	case "":
		return FormatUpper, nil
	default:
		return "", fmt.Errorf("unknown checksum format %q (want upper or lower)", s)
	}
}

// Render formats v according to f. Unknown formats fall back to FormatUpper.
func (f Format) Render(v uint32) string {
	if f == FormatLower {
		return fmt.Sprintf("%x", v)
	}
	return fmt.Sprintf("%08X", v)
}

// Equal reports whether two rendered checksums denote the same value,
// regardless of case or zero padding. Tokens that are not 32-bit hex
// numbers never compare equal.
func Equal(a, b string) bool {
	x, err := strconv.ParseUint(a, 16, 32)
	if err != nil {
		return false
	}
	y, err := strconv.ParseUint(b, 16, 32)
	if err != nil {
		return false
	}
	return x == y
}

// Accumulator is a 32-bit CRC register fed incrementally with byte spans.
// The zero value is ready to use.
type Accumulator struct {
	crc uint32
	fed int64
}

// Feed updates the register with p. Spans must be fed in scan order.
func (a *Accumulator) Feed(p []byte) {
	a.crc = crc32.Update(a.crc, crc32.IEEETable, p)
	a.fed += int64(len(p))
}

// Sum32 returns the current register value.
func (a *Accumulator) Sum32() uint32 {
	return a.crc
}

// Fed returns the total number of bytes fed so far.
func (a *Accumulator) Fed() int64 {
	return a.fed
}
