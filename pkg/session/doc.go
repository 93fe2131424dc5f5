/*
Package session implements per-user serialization of conversation access.

It provides the critical section around load -> transition -> save for one
user id, integrating in-process ref-counted locks with an optional
distributed locker for multi-replica deployments.
*/
package session
