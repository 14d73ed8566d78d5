package store

import "fmt"

// Paths builds coordination-store node paths under a single cluster root.
//
// Layout:
//
//	/{cluster}/instances/{instanceName}
//	/{cluster}/instances/{instanceName}/assignments/{taskName}
//	/{cluster}/liveinstances/{seq}
//	/{cluster}/dms/{datastreamName}
//	/{cluster}/dms
//	/{cluster}/connectors/{connector}/{group}/targetAssignment/{timestamp}
//	/{cluster}/connectors/{connector}/{group}/checkpoints/{taskName}
type Paths struct {
	Cluster string
}

// Root returns the cluster's root node.
func (p Paths) Root() string {
	return "/" + p.Cluster
}

// Instances returns the parent node of every instance's ephemeral node.
func (p Paths) Instances() string {
	return p.Root() + "/instances"
}

// Instance returns instanceName's ephemeral node.
func (p Paths) Instance(instanceName string) string {
	return fmt.Sprintf("%s/%s", p.Instances(), instanceName)
}

// InstanceAssignments returns the parent node of instanceName's task nodes.
func (p Paths) InstanceAssignments(instanceName string) string {
	return p.Instance(instanceName) + "/assignments"
}

// InstanceTask returns the node holding taskName's JSON under instanceName.
func (p Paths) InstanceTask(instanceName, taskName string) string {
	return fmt.Sprintf("%s/%s", p.InstanceAssignments(instanceName), taskName)
}

// LiveInstances returns the parent node of the ephemeral-sequential
// liveness and leader-election nodes.
func (p Paths) LiveInstances() string {
	return p.Root() + "/liveinstances"
}

// LiveInstanceSeq returns the prefix passed to a sequential create under
// LiveInstances; ZooKeeper appends the sequence number itself.
func (p Paths) LiveInstanceSeq() string {
	return p.LiveInstances() + "/instance-"
}

// Datastreams returns the parent node of datastream definition nodes, and
// is itself written to as a change-notification tick.
func (p Paths) Datastreams() string {
	return p.Root() + "/dms"
}

// Datastream returns the node holding datastreamName's JSON definition.
func (p Paths) Datastream(datastreamName string) string {
	return fmt.Sprintf("%s/%s", p.Datastreams(), datastreamName)
}

// Connector returns the parent node of a connector's groups.
func (p Paths) Connector(connector string) string {
	return fmt.Sprintf("%s/connectors/%s", p.Root(), connector)
}

// Group returns the parent node of a group's target-assignment and
// checkpoint children.
func (p Paths) Group(connector, group string) string {
	return fmt.Sprintf("%s/%s", p.Connector(connector), group)
}

// TargetAssignments returns the parent node of a group's operator move requests.
func (p Paths) TargetAssignments(connector, group string) string {
	return p.Group(connector, group) + "/targetAssignment"
}

// TargetAssignment returns the node for a specific operator move request,
// keyed by the millisecond timestamp at which it was written.
func (p Paths) TargetAssignment(connector, group string, timestampMillis int64) string {
	return fmt.Sprintf("%s/%d", p.TargetAssignments(connector, group), timestampMillis)
}

// Checkpoints returns the parent node of a group's task checkpoints.
func (p Paths) Checkpoints(connector, group string) string {
	return p.Group(connector, group) + "/checkpoints"
}

// Checkpoint returns the node holding taskName's opaque source position.
func (p Paths) Checkpoint(connector, group, taskName string) string {
	return fmt.Sprintf("%s/%s", p.Checkpoints(connector, group), taskName)
}
