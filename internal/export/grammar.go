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

package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// Grammar is a compiled set of line patterns describing one dialect of the
// export format. Grammars are built once at package initialization and never
// modified afterwards, so they may be shared freely.
type Grammar struct {
	name    string
	header  *regexp.Regexp // file header, no captures
	trailer *regexp.Regexp // END OF EXPORT, captures the checksum token
	assign  *regexp.Regexp // root variable, captures name and value
	binFile *regexp.Regexp // BINFILE start, captures the section name
	cfgFile *regexp.Regexp // CFGFILE start, captures the section name
	endFile *regexp.Regexp // END OF FILE, shared by both section kinds
}

var (
	// StrictGrammar is the canonical dialect. Patterns are anchored and
	// require the whitespace and delimiters the firmware writes.
	StrictGrammar = &Grammar{
		name:    "strict",
		header:  regexp.MustCompile(`^\*+.+CONFIGURATION EXPORT`),
		trailer: regexp.MustCompile(`^\*+\s+END OF EXPORT\s+(\w+)\s+\*+`),
		assign:  regexp.MustCompile(`^(\w+)\s*=\s*([$.\w]+)`),
		binFile: regexp.MustCompile(`^\*+\s+\w*BINFILE:\s*([\w.]+)`),
		cfgFile: regexp.MustCompile(`^\*+\s+CFGFILE:\s*([\w.]+)`),
		endFile: regexp.MustCompile(`^\*+\s+END OF FILE\s+\*+`),
	}

	// LegacyGrammar is the lax dialect written by early tooling. Section
	// names and variable values extend to the end of the line.
	LegacyGrammar = &Grammar{
		name:    "legacy",
		header:  regexp.MustCompile(`^\*+ (.+) CONFIGURATION EXPORT`),
		trailer: regexp.MustCompile(`^\*+ END OF EXPORT (\w+) \*+`),
		assign:  regexp.MustCompile(`^(\w+)=(.+)`),
		binFile: regexp.MustCompile(`^\*+ BINFILE:(.+)`),
		cfgFile: regexp.MustCompile(`^\*+ CFGFILE:(.+)`),
		endFile: regexp.MustCompile(`^\*+ END OF FILE \*+`),
	}

	grammars = map[string]*Grammar{
		StrictGrammar.name: StrictGrammar,
		LegacyGrammar.name: LegacyGrammar,
	}
)

// LookupGrammar returns the grammar registered under name. An empty name
// selects StrictGrammar.
func LookupGrammar(name string) (*Grammar, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return StrictGrammar, nil
	}
	g, ok := grammars[name]
	if !ok {
		return nil, fmt.Errorf("unknown grammar %q (want strict or legacy)", name)
	}
	return g, nil
}

// Name returns the grammar's registered name.
func (g *Grammar) Name() string {
	return g.name
}

// patchTrailer replaces the checksum token of a trailer line with newCRC.
// The line is located with the trailer pattern so only the captured token
// changes; if the pattern does not match the raw form, the first literal
// occurrence of oldCRC is replaced instead.
func (g *Grammar) patchTrailer(line []byte, oldCRC, newCRC string) []byte {
	loc := g.trailer.FindSubmatchIndex(line)
	if loc == nil || loc[2] < 0 {
		if oldCRC == "" {
			return line
		}
		return bytes.Replace(line, []byte(oldCRC), []byte(newCRC), 1)
	}

	out := make([]byte, 0, len(line)-(loc[3]-loc[2])+len(newCRC))
	out = append(out, line[:loc[2]]...)
	out = append(out, newCRC...)
	out = append(out, line[loc[3]:]...)
	return out
}
