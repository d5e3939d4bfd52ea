// Package render prints CLI results as an aligned table, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"qwiic-go/errcode"

	"gopkg.in/yaml.v3"
)

// Table is the tabular view of a result; JSON and YAML encode Data instead.
type Table struct {
	Header []string
	Rows   [][]string
	Data   any
}

// Write renders t to w in format ("table", "json" or "yaml").
func Write(w io.Writer, format string, t Table) error {
	switch format {
	case "", "table":
		return writeTable(w, t)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t.Data)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t.Data); err != nil {
			return err
		}
		return enc.Close()
	}
	return &errcode.E{C: errcode.Unsupported, Op: "render", Msg: "output format " + format}
}

func writeTable(w io.Writer, t Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(t.Header) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Header, "\t"))
	}
	for _, r := range t.Rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}
