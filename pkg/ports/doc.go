/*
Package ports defines the driven ports (interfaces) of the editor.

These interfaces decouple session handling from concrete infrastructure, allowing
the same editor to persist to memory, the local filesystem or Redis.

# Key Interfaces

  - SnapshotStore: Persists serialized sessions as opaque bytes.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.

RunSnapshotStoreContract is a reusable test suite every SnapshotStore adapter runs.
*/
package ports
