package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathsLayout(t *testing.T) {
	t.Parallel()

	p := Paths{Cluster: "prod"}

	require.Equal(t, "/prod", p.Root())
	require.Equal(t, "/prod/instances", p.Instances())
	require.Equal(t, "/prod/instances/instance1", p.Instance("instance1"))
	require.Equal(t, "/prod/instances/instance1/assignments", p.InstanceAssignments("instance1"))
	require.Equal(t, "/prod/instances/instance1/assignments/orders_0_ab12", p.InstanceTask("instance1", "orders_0_ab12"))
	require.Equal(t, "/prod/liveinstances", p.LiveInstances())
	require.Equal(t, "/prod/liveinstances/instance-", p.LiveInstanceSeq())
	require.Equal(t, "/prod/dms", p.Datastreams())
	require.Equal(t, "/prod/dms/orders", p.Datastream("orders"))
	require.Equal(t, "/prod/connectors/kafka-mirror", p.Connector("kafka-mirror"))
	require.Equal(t, "/prod/connectors/kafka-mirror/orders", p.Group("kafka-mirror", "orders"))
	require.Equal(t, "/prod/connectors/kafka-mirror/orders/targetAssignment", p.TargetAssignments("kafka-mirror", "orders"))
	require.Equal(t, "/prod/connectors/kafka-mirror/orders/targetAssignment/1700000000000", p.TargetAssignment("kafka-mirror", "orders", 1700000000000))
	require.Equal(t, "/prod/connectors/kafka-mirror/orders/checkpoints", p.Checkpoints("kafka-mirror", "orders"))
	require.Equal(t, "/prod/connectors/kafka-mirror/orders/checkpoints/orders_0_ab12", p.Checkpoint("kafka-mirror", "orders", "orders_0_ab12"))
}
