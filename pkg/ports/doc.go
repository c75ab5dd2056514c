/*
Package ports defines the ports (interfaces) around the automaton engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to be driven by various transports and to memoize verdicts in
various storage backends.

# Key Interfaces

  - Evaluator: The driving port used by adapters (HTTP, MCP, CLI) to decide words and emptiness.
  - VerdictCache: Responsible for persisting verdicts keyed by automaton and word.
  - DistributedLocker: Provides distributed locking so that replicas do not compute the same verdict twice.
*/
package ports
