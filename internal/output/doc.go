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

// Package output provides the destinations a rewritten export is saved to.
//
// The primary type is Writer, which wraps either a caller supplied
// io.Writer or a file path. File output is atomic: bytes go to a temporary
// file next to the destination, which is synced and renamed into place on
// Close. This matters when an export is patched in place, where a failed
// write must not leave the only copy of a router backup truncated.
//
// Example usage:
//
//	w, err := output.NewFileWriter("fritz.export")
//	if err != nil {
//	    return err
//	}
//	if _, err := w.Write(content); err != nil {
//	    _ = w.Abort()
//	    return err
//	}
//	if err := w.Close(); err != nil {
//	    return err
//	}
package output
