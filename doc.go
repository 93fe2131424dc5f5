/*
Package lobabot is a conversational webhook bridge for the Loba dog-services
bot: it receives WhatsApp Cloud API events, advances a per-user intake flow
(dog training, walks, or human hand-off), validates answers, and forwards
completed submissions to a spreadsheet-backed sink.

# Architecture

The conversation engine (pkg/engine) is a pure state machine behind
Hexagonal ports (pkg/ports): conversation storage (memory or Redis),
the messaging provider, and the record sink are all adapters. The bridge
(internal/bridge) wires one inbound message through the engine under a
per-user session lock, then executes the outcome's directives.
*/
package lobabot

// Version is the current release of lobabot.
const Version = "0.1.0"
