package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAvailabilityWireForm(t *testing.T) {
	cases := []struct {
		in   Availability
		want string
	}{
		{Available, "true"},
		{Taken, "false"},
		{Unknown, "null"},
	}

	for _, tc := range cases {
		data, err := json.Marshal(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, string(data))

		var back Availability
		require.NoError(t, json.Unmarshal(data, &back))
		require.Equal(t, tc.in, back)
	}
}

func TestAvailabilityRejectsNonBool(t *testing.T) {
	var a Availability
	require.Error(t, json.Unmarshal([]byte(`"yes"`), &a))
}

func TestOutcomeWireForm(t *testing.T) {
	data, err := json.Marshal(Outcome{Registry: KindNPM, Name: "x", Available: Available})
	require.NoError(t, err)
	require.JSONEq(t, `{"registry":"npm","name":"x","available":true,"error":null}`, string(data))

	data, err = json.Marshal(Outcome{Registry: KindGitHub, Name: "o/x", Available: Unknown, Err: "timeout"})
	require.NoError(t, err)
	require.JSONEq(t, `{"registry":"github","name":"o/x","available":null,"error":"timeout"}`, string(data))
}

func TestDomainOutcomeWireForm(t *testing.T) {
	data, err := json.Marshal(DomainOutcome{Domain: "x.dev", Available: Taken})
	require.NoError(t, err)
	require.JSONEq(t, `{"domain":"x.dev","available":false,"error":null}`, string(data))
}

func TestParseKind(t *testing.T) {
	kind, ok := ParseKind("dev_domain")
	require.True(t, ok)
	require.Equal(t, KindDevDomain, kind)

	_, ok = ParseKind("maven")
	require.False(t, ok)
}

func TestSelectionToggleAndCount(t *testing.T) {
	sel := DefaultSelection()
	require.Equal(t, len(Kinds), sel.EnabledCount())

	sel.Toggle(KindDebian)
	require.False(t, sel.Enabled(KindDebian))
	require.Equal(t, len(Kinds)-1, sel.EnabledCount())

	sel.Toggle(KindDebian)
	require.True(t, sel.Enabled(KindDebian))
}

func TestSelectionFor(t *testing.T) {
	sel := SelectionFor(KindNPM, KindPyPI)
	require.True(t, sel.Enabled(KindNPM))
	require.True(t, sel.Enabled(KindPyPI))
	require.False(t, sel.Enabled(KindCrates))
	require.Equal(t, 2, sel.EnabledCount())
}
