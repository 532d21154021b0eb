// Command fieldfmt renders JSON input in any of the library's output
// formats, applying suffix-driven field formatting and secret redaction.
//
//	echo '{"size_bytes": 2048, "api_secret": "hunter2"}' | fieldfmt render -o plain
//
// All output, including errors, is structured and written to stdout; the
// command never writes to stderr.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/unitkey/fieldfmt"
)

func main() {
	cmd := newRootCmd(os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stdout, fieldfmt.ToJSON(fieldfmt.CLIError(err.Error())))
		os.Exit(2)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var output string

	root := &cobra.Command{
		Use:           "fieldfmt",
		Short:         "Render structured data with suffix-driven field formatting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&output, "output", "o", "auto",
		"output format: json, yaml, plain, or auto (plain on a terminal, json otherwise)")

	root.AddCommand(newRenderCmd(out, &output))
	root.AddCommand(newSizeCmd(out, &output))
	return root
}

func newRenderCmd(out io.Writer, output *string) *cobra.Command {
	var each, trace bool

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a JSON document from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(*output)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			start := time.Now()
			var value any
			if err := json.NewDecoder(in).Decode(&value); err != nil {
				return fmt.Errorf("invalid JSON input: %v", err)
			}

			if each {
				items, ok := value.([]any)
				if !ok {
					return fmt.Errorf("--each requires a top-level JSON array")
				}
				return fieldfmt.WriteSeq(out, format, slices.Values(items))
			}
			if trace {
				value = fieldfmt.OkTrace(value, map[string]any{
					"duration_ms": time.Since(start).Milliseconds(),
					"trace_id":    uuid.NewString(),
				})
			}
			return fieldfmt.Write(out, format, value)
		},
	}
	cmd.Flags().BoolVar(&each, "each", false, "render each element of a top-level array as its own document")
	cmd.Flags().BoolVar(&trace, "trace", false, "wrap the value in an ok envelope carrying a trace id and duration")
	return cmd
}

func newSizeCmd(out io.Writer, output *string) *cobra.Command {
	return &cobra.Command{
		Use:   "size <text>",
		Short: "Parse a human-readable size string into bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveFormat(*output)
			if err != nil {
				return err
			}
			n, ok := fieldfmt.ParseSize(args[0])
			if !ok {
				return fmt.Errorf("invalid size %q: expected a number with optional B/K/M/G/T unit", args[0])
			}
			return fieldfmt.Write(out, format, fieldfmt.Ok(map[string]any{"size_bytes": n}))
		},
	}
}

func resolveFormat(s string) (fieldfmt.Format, error) {
	if s == "auto" {
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return fieldfmt.Plain, nil
		}
		return fieldfmt.JSON, nil
	}
	return fieldfmt.ParseFormat(s)
}
