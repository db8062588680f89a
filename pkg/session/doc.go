/*
Package session manages live onboarding flows for multi-visitor hosts.

It keeps a registry of running flows, serializes operations per session with
reference-counted local locks (and an optional distributed lock), persists a
snapshot after every state change and resumes flows from those snapshots after
a restart. State changes are also published as diffs to subscribers.
*/
package session
