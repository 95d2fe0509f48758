package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/compact"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/page"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/report"
	"github.com/shreyask5/Vurdhaan-Report-Project-sub000/internal/store"
	"github.com/spf13/cobra"
)

// reportFile is the plain on-disk form of a report: the structural tree
// plus the raw rows it references.
type reportFile struct {
	Report *report.ErrorReport `json:"report"`
	Rows   report.RowDataMap   `json:"rows_data"`
}

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "reportctl",
		Short: "Inspect and convert compact error report payloads",
		Long: `reportctl works with the compact wire form of validation error reports:
encode a plain report into it, decode one back, and preview the metadata
and pages a server would serve for it.`,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newInspectCmd(),
		newPageCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("reportctl version %s\n", version)
			}
		},
	}
}

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a plain report file into the compact wire form",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			minSize, _ := cmd.Flags().GetInt("min-size")

			rf, err := readReportFile(in)
			if err != nil {
				return err
			}
			if err := rf.Report.Validate(); err != nil {
				return err
			}

			enc := &compact.Encoder{Codec: compact.GzipCodec{}, MinSize: minSize}
			payload, err := enc.Encode(rf.Report, rf.Rows)
			if err != nil {
				return err
			}
			return writeOutput(out, payload)
		},
	}

	cmd.Flags().String("in", "", "Plain report file (required)")
	cmd.Flags().String("out", "", "Output file (default stdout)")
	cmd.Flags().Int("min-size", 0, "Only compress payloads at least this many bytes")
	cmd.MarkFlagRequired("in")

	return cmd
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a compact payload back into the plain report form",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			strict, _ := cmd.Flags().GetBool("strict")

			payload, err := readPayloadFile(in)
			if err != nil {
				return err
			}

			dec := &compact.Decoder{Codec: compact.GzipCodec{}, StrictFieldMap: strict}
			decoded, err := dec.Decode(payload)
			if err != nil {
				return err
			}
			for _, warn := range decoded.Warnings {
				fmt.Fprintf(os.Stderr, "warning: %s\n", warn)
			}
			return writeOutput(out, reportFile{Report: decoded.Report, Rows: decoded.Rows})
		},
	}

	cmd.Flags().String("in", "", "Compact payload file (required)")
	cmd.Flags().String("out", "", "Output file (default stdout)")
	cmd.Flags().Bool("strict", false, "Reject unmapped row keys instead of passing them through")
	cmd.MarkFlagRequired("in")

	return cmd
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the metadata a server would serve for a payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			pageSize, _ := cmd.Flags().GetInt("page-size")
			jsonOut, _ := cmd.Flags().GetBool("json")
			if pageSize < 1 {
				return fmt.Errorf("--page-size must be at least 1")
			}

			decoded, err := decodePayloadFile(in)
			if err != nil {
				return err
			}
			meta := page.ComputeMetadata(decoded.Report, pageSize)

			if jsonOut {
				return writeOutput("", meta)
			}
			fmt.Printf("%d logical error(s) across %d row(s) in %d categories\n",
				meta.TotalErrors, meta.ErrorRows, meta.ErrorCategories)
			for _, c := range meta.Categories {
				fmt.Printf("  %s: %d error(s), %d page(s)\n", c.Name, c.TotalErrors, c.TotalPages)
			}
			return nil
		},
	}

	cmd.Flags().String("in", "", "Compact payload file (required)")
	cmd.Flags().Int("page-size", store.DefaultPageSize, "Logical errors per page")
	cmd.MarkFlagRequired("in")

	return cmd
}

func newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Slice one page of one category out of a payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			category, _ := cmd.Flags().GetString("category")
			pageNumber, _ := cmd.Flags().GetInt("page")
			pageSize, _ := cmd.Flags().GetInt("page-size")
			if pageSize < 1 {
				return fmt.Errorf("--page-size must be at least 1")
			}

			decoded, err := decodePayloadFile(in)
			if err != nil {
				return err
			}
			p, err := page.Slice(decoded.Report, decoded.Rows, category, pageNumber, pageSize)
			if err != nil {
				return err
			}
			return writeOutput("", p)
		},
	}

	cmd.Flags().String("in", "", "Compact payload file (required)")
	cmd.Flags().String("category", "", "Category name (required)")
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("page-size", store.DefaultPageSize, "Logical errors per page")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("category")

	return cmd
}

func readReportFile(path string) (*reportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var rf reportFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if rf.Report == nil {
		return nil, fmt.Errorf("%s holds no report", path)
	}
	return &rf, nil
}

func readPayloadFile(path string) (compact.Payload, error) {
	var p compact.Payload
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return p, nil
}

func decodePayloadFile(path string) (*compact.Decoded, error) {
	payload, err := readPayloadFile(path)
	if err != nil {
		return nil, err
	}
	dec := &compact.Decoder{Codec: compact.GzipCodec{}}
	return dec.Decode(payload)
}

func writeOutput(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
