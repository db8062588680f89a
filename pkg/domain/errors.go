package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExists is returned when a session is started under an ID that is already live.
var ErrSessionExists = errors.New("session already running")

// ErrSelectionNotFound is returned when no guide selection has been persisted under a key.
var ErrSelectionNotFound = errors.New("selection not found")

// ErrInvalidTransition is returned when an action is not legal in the current step.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrNoGuideSelected is returned when confirm or reveal is reached without a selected guide.
var ErrNoGuideSelected = errors.New("no guide selected")

// ErrUnknownGuide is returned when a guide ID is not part of the session roster.
var ErrUnknownGuide = errors.New("unknown guide")

// ErrFlowClosed is returned when an action is sent to a flow that has been torn down.
var ErrFlowClosed = errors.New("flow closed")

// ErrEmptyRoster is returned when a flow is started without any guide.
var ErrEmptyRoster = errors.New("empty roster")
