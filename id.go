package ivr

import "github.com/google/uuid"

// Id is a process-wide unique identifier, used for timer correlation (§4.7)
// and sideshow request tagging (§4.8). Backed by a UUIDv7 so ordering by
// generation time survives logging and serialization, the same scheme the
// rest of this module's ancestry uses for entity IDs.
type Id uuid.UUID

// NextId returns a fresh, process-wide unique Id.
func NextId() Id {
	return Id(uuid.Must(uuid.NewV7()))
}

func (id Id) String() string { return uuid.UUID(id).String() }
