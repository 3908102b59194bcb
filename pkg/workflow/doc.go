/*
Package workflow implements a small directed-acyclic-graph execution model for
sequencing assistant steps.

A Graph is an explicit adjacency description: named nodes plus edges. Each node
is a function over a shared mutable State record. Execution is strictly
sequential in topological order; the current assistants only use linear chains,
but the model supports general DAGs for extensibility.

Failure semantics: a node that cannot complete its work should degrade to a
safe default and record a notice rather than abort the run. The driver never
stops early; node errors are collected and returned joined, alongside the
complete final state, so a run always reaches its end.
*/
package workflow
