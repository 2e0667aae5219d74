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

// Package export recomputes and patches the CRC-32 trailer of router
// configuration export files.
//
// An export file is line oriented:
//
//	**** FRITZ!Box 7590 CONFIGURATION EXPORT
//	Password=$$$$ABC
//	FirmwareVersion=154.07.29
//	**** CFGFILE:ar7.cfg
//	ar7cfg {
//	}
//	**** END OF FILE ****
//	**** BINFILE:stat.bin
//	48656C6C6F
//	**** END OF FILE ****
//	**** END OF EXPORT 1A2B3C4D ****
//
// The trailer records a CRC-32 over a format defined selection of bytes:
// each root variable as name+value+NUL, each section name+NUL, decoded
// BINFILE payload, and CFGFILE content with the end of line of the last
// content line excluded. Doubled backslashes are collapsed before anything
// is matched or checksummed.
//
// Scan performs a single streaming pass that computes the checksum while
// copying the input to a sink, substituting only the trailer's checksum
// field. Session wraps Scan with the load/save lifecycle used by the CLI:
//
//	s := export.NewSession(export.DefaultOptions())
//	if err := s.Load("fritz.export", true); err != nil {
//	    return err
//	}
//	fmt.Printf("%s -> %s\n", s.OldCRC(), s.NewCRC())
//	if err := s.Save("fritz.fixed.export"); err != nil {
//	    return err
//	}
package export
