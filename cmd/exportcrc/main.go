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

package main

import (
	"fmt"
	"os"

	exporterrors "github.com/sirseerhq/exportcrc/internal/errors"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := newRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exporterrors.ExitCode(err))
	}
}

// newRootCommand builds the exportcrc command. It is separate from main so
// tests can execute it in process.
func newRootCommand() *cobra.Command {
	var f fixFlags

	cmd := &cobra.Command{
		Use:   "exportcrc [flags] <input>",
		Short: "Recompute the checksum of a router configuration export",
		Long: `exportcrc verifies and repairs the CRC-32 checksum recorded in the
END OF EXPORT trailer of a router configuration export. Any edit to an
export invalidates that checksum and the router refuses to import the file;
exportcrc recomputes it and patches the trailer.

Without --change or --output the file is only scanned and the recorded and
computed checksums are printed.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args[0], f)
		},
	}

	cmd.Flags().BoolVarP(&f.change, "change", "c", false, "Overwrite the input file with the corrected checksum")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the corrected export to this path")
	cmd.Flags().BoolVar(&f.check, "check", false, "Only verify; exit with status 4 if the recorded checksum is wrong")
	cmd.Flags().StringVar(&f.configPath, "config", "", "Config file (default: .exportcrc.yaml or ~/.exportcrc/config.yaml)")
	cmd.Flags().StringVar(&f.format, "format", "", "Checksum rendering: upper or lower")
	cmd.Flags().StringVar(&f.grammar, "grammar", "", "Export grammar: strict or legacy")
	cmd.Flags().StringVar(&f.report, "report", "", "Write a JSON run report to this path")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Trace every scanned line at debug level")

	cmd.MarkFlagsMutuallyExclusive("change", "output")
	cmd.MarkFlagsMutuallyExclusive("check", "change")
	cmd.MarkFlagsMutuallyExclusive("check", "output")

	return cmd
}
