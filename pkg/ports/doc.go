/*
Package ports defines the driven ports (interfaces) for the Loba bridge.

These interfaces decouple the conversation engine from external
implementations, allowing the bridge to work with various storage backends,
messaging providers, and record sinks.

# Key Interfaces

  - ConversationStore: Responsible for persisting and loading per-user Conversation state.
  - DistributedLocker: Provides distributed locking for handling concurrent access to one user id.
  - Messenger: Outbound sends to the chat-messaging provider (text, menu, contact card).
  - RecordSink: Accepts the flat record produced by a completed flow.
*/
package ports
