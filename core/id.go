package core

import "github.com/google/uuid"

// NewID generates a new unique identifier used for agents, workflows and
// result correlation throughout the engine.
func NewID() string { return uuid.NewString() }
