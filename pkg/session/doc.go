// Package session keeps editor workspaces behind a ports.SnapshotStore.
//
// Every read-modify-write of a session runs under a per-session mutex and,
// when a ports.DistributedLocker is configured, a lock shared by all
// replicas. Workspaces are stored as snapshot bytes; cursor, marquee and
// tool-local state stay in the Manager's memory so a pointer gesture spanning
// several calls keeps its progress.
package session
