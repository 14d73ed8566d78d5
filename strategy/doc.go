// Package strategy provides the sticky task-count and partition-placement
// strategies used to compute a group's assignment.
//
// Two strategies cooperate:
//
//   - StickyMulticast decides how many tasks a group should have and which
//     instance owns each one, keeping existing owners wherever possible.
//   - StickyPartition composes a MulticastStrategy and folds a partition
//     snapshot forward onto the resulting tasks, minting a successor task
//     only when a task's partition set actually changes.
//
// Both strategies are pure and synchronous: they never perform I/O and
// never mutate the Task or Assignment values they are given.
package strategy
