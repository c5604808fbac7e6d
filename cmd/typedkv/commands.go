package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/typedkv"
	"github.com/arloliu/typedkv/format"
)

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <type> <literal>",
		Short: "Write a typed value",
		Long: `Write a literal as the given logical type.

Vectors take comma separated components ("1,0,0,1"); arrays take JSON
("[1,2,3]", "[[0,0,0,1]]", '["a","b"]').`,
		Args: cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			t, err := format.ParseLogicalType(args[1])
			if err != nil {
				return err
			}

			if err := a.codec.EncodeLiteral(args[0], t, args[2]); err != nil {
				return err
			}

			return a.save()
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key> [type]",
		Short: "Read a value, detecting its type when none is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			key := args[0]

			var (
				t format.LogicalType
				v any
			)
			if len(args) == 2 {
				var err error
				if t, err = format.ParseLogicalType(args[1]); err != nil {
					return err
				}
				if v, err = a.codec.Decode(key, t); err != nil {
					return err
				}
			} else {
				t, v = a.codec.DecodeDetected(key)
			}

			_, err := fmt.Fprintf(a.out, "%s\t%s\n", t, typedkv.FormatValue(v))

			return err
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>...",
		Short: "Delete keys, including the halves of a Long",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, key := range args {
				a.codec.Delete(key)
			}

			return a.save()
		},
	}
}

// scanRow is one classified key as printed by scan.
type scanRow struct {
	Key   string `json:"key" yaml:"key"`
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

func newScanCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Classify and print every key in the store",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			detections := a.codec.Classify(a.store)

			rows := make([]scanRow, 0, len(detections))
			for _, d := range detections {
				v, _ := a.codec.Decode(d.Key, d.Type)
				rows = append(rows, scanRow{
					Key:   d.Key,
					Type:  d.Type.String(),
					Value: typedkv.FormatValue(v),
				})
			}

			return writeRows(a.out, output, rows)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json, yaml")

	return cmd
}

func writeRows(w io.Writer, output string, rows []scanRow) error {
	switch output {
	case "text":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, r := range rows {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Key, r.Type, r.Value)
		}

		return tw.Flush()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

// importEntry is one value in an import file.
type importEntry struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Write many literals from a YAML file",
		Long: `Write every entry of a YAML mapping of key to {type, value}:

  score: {type: Int, value: "42"}
  tint:  {type: Color, value: "1,0,0,1"}

Valid entries are written even when others fail; all failures are reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			literals, err := parseImport(data)
			if err != nil {
				return err
			}

			importErr := a.codec.Import(literals)
			if err := a.save(); err != nil {
				return err
			}

			return importErr
		},
	}
}

func parseImport(data []byte) (map[string]typedkv.Literal, error) {
	var raw map[string]importEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}

	literals := make(map[string]typedkv.Literal, len(raw))
	for key, e := range raw {
		t, err := format.ParseLogicalType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		literals[key] = typedkv.Literal{Type: t, Text: e.Value}
	}

	return literals, nil
}
