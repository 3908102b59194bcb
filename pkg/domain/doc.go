/*
Package domain contains the core domain models for the Wellspring assistant.

It defines the fundamental entities of the conversation layer, such as Messages,
Threads, and Booking records. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Message: A single role-tagged turn in a conversation (role is data, not type identity).
  - Thread: A persisted, ordered conversation history identified by an opaque id.
  - Booking: One appointment request appended to the booking ledger.
*/
package domain
