/*
Package ports defines the driven ports (interfaces) for the locus engine.

These interfaces decouple the learner from where domains and traces come from
and from how a run is told to stop.

# Key Interfaces

  - DomainLoader: Provides the domain description (e.g., from YAML files or memory).
  - CorpusLoader: Provides the trace corpus (e.g., from files, a Loam repository or memory).
  - HaltSource: A cooperative, poll-based stop flag (e.g., a Redis key).
*/
package ports
