/*
Package ports defines the driven ports (interfaces) for the Vestibule onboarding flow.

These interfaces decouple the flow from external implementations, allowing
it to work with various storage backends and roster sources.

# Key Interfaces

  - RosterLoader: Responsible for loading the guide roster (e.g., from a file or memory).
  - SelectionStore: Persists the chosen guide identifier under a selection key.
  - StateStore: Responsible for persisting and loading flow snapshots for server hosts.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
