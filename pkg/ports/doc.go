/*
Package ports defines the driven ports (interfaces) for the Wellspring core.

These interfaces decouple the assistant logic from external collaborators,
allowing the agents to work with various storage backends, model providers,
and search services.

# Key Interfaces

  - ConversationStore: Responsible for persisting ordered message logs per thread.
  - Completer: The LLM text-completion collaborator.
  - Searcher: The web-search collaborator.

The package also ships a contract test suite (RunConversationStoreContract)
that every store implementation must pass.
*/
package ports
