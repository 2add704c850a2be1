package view

import "github.com/google/uuid"

// ID is a stable instance identifier for a ViewNode or ComponentView. The
// teacher identifies signals with a printf'd atomic counter
// ("signal_%d"); view nodes need identities that survive being passed
// across package boundaries (reconciler move bookkeeping, scheduler job
// keys, directive binding maps) so Vireo mints real UUIDs instead, the
// same way several of the pack's other repos do for instance ids.
type ID = uuid.UUID

// NewID mints a fresh instance identifier.
func NewID() ID { return uuid.New() }
