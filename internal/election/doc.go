// Package election provides the default leader-election agent: an
// ephemeral-sequential node under the coordination store's liveinstances
// parent, where the node holding the smallest sequence number is leader.
package election
