// Package brooklin implements a sticky partition assignment engine for a
// distributed streaming-data platform: the leader turns a time-varying set
// of stream definitions and source partitions into a stable, balanced,
// mutation-minimizing assignment of work units across live worker
// instances.
//
// # Quick Start
//
// Basic usage with a ZooKeeper-backed coordination store:
//
//	import (
//	    "github.com/jaidparmar/brooklin"
//	    "github.com/jaidparmar/brooklin/internal/election"
//	    "github.com/jaidparmar/brooklin/internal/store"
//	    "github.com/jaidparmar/brooklin/source"
//	)
//
//	client, err := store.Dial([]string{"zk1:2181", "zk2:2181"}, 15*time.Second)
//	zkStore := store.NewZKStore(client, "prod-cluster")
//	elect := election.NewZKElection(client, store.Paths{Cluster: "prod-cluster"}.LiveInstances(), time.Second)
//
//	cfg := brooklin.DefaultConfig()
//	cfg.ClusterName = "prod-cluster"
//	cfg.InstanceName = "worker-7"
//	cfg.StoreEndpoints = []string{"zk1:2181", "zk2:2181"}
//
//	mgr, err := brooklin.NewManager(cfg, zkStore, registry, roster, provider,
//	    brooklin.WithElectionAgent(elect))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := mgr.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer mgr.Stop(context.Background())
//
// # Key Concepts
//
//   - Tasks, not partitions, are the unit of assignment: each task owns a
//     subset of a group's partitions and is replaced, never mutated, when
//     its partition set changes.
//   - A sticky multicast strategy settles per-group task counts across the
//     whole cluster before any group's partitions are folded in, so adding
//     one datastream never reshuffles an unrelated group's tasks.
//   - A sticky partition strategy folds each group's source partitions onto
//     its settled tasks, preferring to keep a partition on its current task
//     and minimizing the number of tasks touched by any one rebalance.
//   - A cleanup planner tracks predecessor/successor chains via each task's
//     recorded dependencies and removes a predecessor once a task in the
//     committed assignment names it as a dependency and the predecessor
//     itself is no longer part of that assignment.
//
// # Architecture
//
// Exactly one instance holds leadership at a time, established through an
// ElectionAgent (the bundled internal/election adapter elects the
// ephemeral-sequential node with the smallest ZooKeeper sequence number).
// The leader runs a debounced loop: list groups and live instances, read the
// previous assignment, settle task counts with the multicast strategy, then
// fan out per-group partition folding across a bounded worker pool before
// committing the result and running cleanup.
package brooklin
