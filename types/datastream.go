package types

// Status represents the lifecycle state of a Datastream.
type Status int

const (
	// StatusReady indicates the datastream is actively moving data.
	StatusReady Status = iota

	// StatusPaused indicates the datastream's tasks are retained but idle.
	StatusPaused

	// StatusStopping indicates the datastream is being torn down.
	StatusStopping

	// StatusDeleting indicates the datastream's tasks are pending removal.
	StatusDeleting
)

// String returns the human-readable name of the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "READY"
	case StatusPaused:
		return "PAUSED"
	case StatusStopping:
		return "STOPPING"
	case StatusDeleting:
		return "DELETING"
	default:
		return "UNKNOWN"
	}
}

// Datastream is a named source-to-destination data pipeline.
//
// A Datastream never carries partition assignment state itself; that
// state lives on the Task records produced for its DatastreamGroup.
type Datastream struct {
	// Name uniquely identifies the datastream.
	Name string `json:"name"`

	// ConnectorName names the connector implementation that reads the
	// source and writes the destination (e.g. "kafka-mirror", "file-reader").
	ConnectorName string `json:"connectorName"`

	// SourceConnectionString is the connector-specific source locator.
	// For message-log connectors this follows the grammar parsed by
	// package connstring.
	SourceConnectionString string `json:"source.connectionString"`

	// DestinationConnectionString is the connector-specific destination locator.
	DestinationConnectionString string `json:"destination.connectionString"`

	// DestinationPartitions is the destination's partition count, when
	// the destination is itself partitioned.
	DestinationPartitions int `json:"destination.partitions"`

	// TransportProviderName names the transport adapter used to deliver
	// records to the destination.
	TransportProviderName string `json:"transportProviderName"`

	// Owner identifies the team or system that created the datastream.
	Owner string `json:"owner,omitempty"`

	// Status is the current lifecycle state.
	Status Status `json:"status"`

	// Metadata is free-form string metadata attached by the operator.
	Metadata map[string]string `json:"metadata"`
}

// TaskPrefix returns the datastream's own name, which by convention is the
// task-name prefix of a group formed around it. It does not consult any
// group the datastream has joined.
func (d Datastream) TaskPrefix() string {
	return d.Name
}

// DatastreamGroup is a non-empty ordered collection of datastreams sharing
// a task prefix. It is the unit at which the assignment strategies operate.
type DatastreamGroup struct {
	// TaskPrefix uniquely identifies the group.
	TaskPrefix string `json:"taskPrefix"`

	// Datastreams is the ordered, non-empty set of member datastreams.
	Datastreams []Datastream `json:"datastreams"`

	// NumTasks is the target task count for this group, consulted by the
	// multicast strategy. A value of zero means "fall back to the engine's
	// configured default task count".
	NumTasks int `json:"numTasks"`

	// PartitionSharded indicates whether the group's tasks may co-reside
	// on the same instance (true for sticky-partition groups, false for
	// plain multicast groups that cap task count at the live instance count).
	PartitionSharded bool `json:"partitionSharded"`
}

// Connector returns the connector name shared by the group's datastreams,
// or the empty string if the group has no members.
func (g DatastreamGroup) Connector() string {
	if len(g.Datastreams) == 0 {
		return ""
	}

	return g.Datastreams[0].ConnectorName
}
