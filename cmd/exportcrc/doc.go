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

// Package main implements the exportcrc command-line interface.
// This tool recomputes the CRC-32 checksum embedded in the trailer of a
// router configuration export so an edited export is accepted again on
// import.
//
// The CLI supports:
//   - Verifying an export without modifying it (default behavior)
//   - Patching the export in place with --change
//   - Writing the patched export elsewhere with --output
//   - Failing on a wrong recorded checksum with --check
//   - Writing a JSON run report with --report
//
// Usage:
//
//	exportcrc [flags] <input>
//
// Example:
//
//	exportcrc --change fritzbox.export
//	exportcrc --grammar legacy -o fixed.export fritzbox.export
//
// Exit codes:
//   - 0: Success
//   - 1: General or usage error
//   - 2: Invalid export content
//   - 3: File open, read or write error
//   - 4: Checksum mismatch (--check)
package main
