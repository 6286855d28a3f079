package state

import (
	"strconv"

	"github.com/google/uuid"
)

// IDSource produces action identities. Tests swap it for a deterministic one.
type IDSource func() ActionID

func newActionID() ActionID {
	return ActionID(uuid.NewString())
}

// SequentialIDs returns an IDSource yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) IDSource {
	var n int
	return func() ActionID {
		n++
		return ActionID(prefix + "-" + strconv.Itoa(n))
	}
}
