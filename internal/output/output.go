// Package output renders check results for the CLI in table or JSON form.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nameclaim/nameclaim/internal/core"
)

// Formatter writes probe results to a stream.
type Formatter interface {
	WriteOutcomes(w io.Writer, name string, results []core.Outcome) error
	WriteDomains(w io.Writer, results []core.DomainOutcome) error
}

// NewFormatter selects a formatter by name. Anything other than "json" gets
// the table.
func NewFormatter(format string) Formatter {
	if format == "json" {
		return JSONFormatter{}
	}
	return TableFormatter{}
}

// TableFormatter renders results as an aligned terminal table.
type TableFormatter struct{}

// WriteOutcomes renders the registry verdicts for one name.
func (TableFormatter) WriteOutcomes(w io.Writer, name string, results []core.Outcome) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Availability for %q", name)
	t.AppendHeader(table.Row{"", "Registry", "Name", "Status"})

	for _, r := range results {
		t.AppendRow(table.Row{glyph(r.Available), r.Registry.Label(), r.Name, statusCell(r.Available, r.Err)})
	}

	t.Render()
	return nil
}

// WriteDomains renders the verdicts of a TLD sweep.
func (TableFormatter) WriteDomains(w io.Writer, results []core.DomainOutcome) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"", "Domain", "Status"})

	for _, r := range results {
		t.AppendRow(table.Row{glyph(r.Available), r.Domain, statusCell(r.Available, r.Err)})
	}

	t.Render()
	return nil
}

func glyph(a core.Availability) string {
	switch a {
	case core.Available:
		return text.FgGreen.Sprint("✓")
	case core.Taken:
		return text.FgRed.Sprint("✗")
	default:
		return text.FgYellow.Sprint("?")
	}
}

func statusCell(a core.Availability, errText string) string {
	var status string
	switch a {
	case core.Available:
		status = text.FgGreen.Sprint("available")
	case core.Taken:
		status = text.FgRed.Sprint("taken")
	default:
		status = text.FgYellow.Sprint("unknown")
	}
	if errText != "" {
		status = fmt.Sprintf("%s (%s)", status, errText)
	}
	return status
}

// JSONFormatter emits the wire schema, one document per call.
type JSONFormatter struct{}

type checkDocument struct {
	Name    string         `json:"name"`
	Results []core.Outcome `json:"results"`
}

// WriteOutcomes emits {"name","results":[...]} with indentation.
func (JSONFormatter) WriteOutcomes(w io.Writer, name string, results []core.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(checkDocument{Name: name, Results: results})
}

type domainDocument struct {
	Results []core.DomainOutcome `json:"results"`
}

// WriteDomains emits {"results":[...]} with indentation.
func (JSONFormatter) WriteDomains(w io.Writer, results []core.DomainOutcome) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(domainDocument{Results: results})
}
