package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nameclaim/nameclaim/internal/core"
)

var sampleOutcomes = []core.Outcome{
	{Registry: core.KindNPM, Name: "mypkg", Available: core.Available},
	{Registry: core.KindCrates, Name: "mypkg", Available: core.Taken},
	{Registry: core.KindGitHub, Name: "o/mypkg", Available: core.Unknown, Err: "github token not set (set GITHUB_TOKEN)"},
}

func TestNewFormatter(t *testing.T) {
	require.IsType(t, JSONFormatter{}, NewFormatter("json"))
	require.IsType(t, TableFormatter{}, NewFormatter("table"))
	require.IsType(t, TableFormatter{}, NewFormatter(""))
}

func TestTableOutcomes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableFormatter{}.WriteOutcomes(&buf, "mypkg", sampleOutcomes))

	out := buf.String()
	require.Contains(t, out, "npm")
	require.Contains(t, out, "crates.io")
	require.Contains(t, out, "GitHub")
	require.Contains(t, out, "available")
	require.Contains(t, out, "taken")
	require.Contains(t, out, "unknown")
	require.Contains(t, out, "github token not set")
}

func TestTableDomains(t *testing.T) {
	var buf bytes.Buffer
	results := []core.DomainOutcome{
		{Domain: "myname.com", Available: core.Taken},
		{Domain: "myname.dev", Available: core.Available},
	}
	require.NoError(t, TableFormatter{}.WriteDomains(&buf, results))

	out := buf.String()
	require.Contains(t, out, "myname.com")
	require.Contains(t, out, "myname.dev")
}

func TestJSONOutcomes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONFormatter{}.WriteOutcomes(&buf, "mypkg", sampleOutcomes))

	var doc struct {
		Name    string            `json:"name"`
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, "mypkg", doc.Name)
	require.Len(t, doc.Results, 3)
	require.JSONEq(t, `{"registry":"npm","name":"mypkg","available":true,"error":null}`, string(doc.Results[0]))
}

func TestJSONDomains(t *testing.T) {
	var buf bytes.Buffer
	results := []core.DomainOutcome{{Domain: "myname.dev", Available: core.Unknown, Err: "lookup timeout"}}
	require.NoError(t, JSONFormatter{}.WriteDomains(&buf, results))

	var doc struct {
		Results []json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.JSONEq(t, `{"domain":"myname.dev","available":null,"error":"lookup timeout"}`, string(doc.Results[0]))
}
