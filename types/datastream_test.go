package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "READY", StatusReady.String())
	require.Equal(t, "PAUSED", StatusPaused.String())
	require.Equal(t, "STOPPING", StatusStopping.String())
	require.Equal(t, "DELETING", StatusDeleting.String())
	require.Equal(t, "UNKNOWN", Status(99).String())
}

func TestDatastreamGroupConnector(t *testing.T) {
	t.Parallel()

	empty := DatastreamGroup{}
	require.Equal(t, "", empty.Connector())

	g := DatastreamGroup{
		Datastreams: []Datastream{{ConnectorName: "kafka-mirror"}},
	}
	require.Equal(t, "kafka-mirror", g.Connector())
}
