/*
Package domain contains the core domain models of the Vestibule onboarding flow.

It defines the entities the flow controller works with: the guides a visitor can pick,
the tones that select a welcome message, the steps of the flow and the snapshot of a
running session. This package is kept pure and free of external dependencies like I/O
or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Guide: A selectable character persona (consumed, never owned by the flow).
  - Tone: The category of a guide that picks the welcome message shown at reveal time.
  - Step: One of welcome, choose, confirm or reveal.
  - State: The runtime snapshot of a session (Step, Order, Selection, Preview).
  - LifecycleHooks: Callbacks for observability of step changes and completion.
*/
package domain
