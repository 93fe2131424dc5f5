/*
Package domain contains the core domain models for the Loba intake flows.

It defines the fundamental entities of the conversation state machine and is
kept pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Conversation: Per-user snapshot of the intake flow (Step, accumulated Answers).
  - Input: An inbound message after adapter normalization (text + kind).
  - Outcome: The engine's decision for one inbound event (prompt, menu, or submit).
  - Record: The flat row forwarded to the spreadsheet sink on flow completion.
*/
package domain
