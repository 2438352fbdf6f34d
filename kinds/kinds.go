package kinds

const (
	length   = 64
	idLength = 8
	depthMax = length / idLength
	idMask   = (1 << idLength) - 1
)

// Bases returns the base ids a kind was derived from, nearest first.
func Bases(kind uint64) [depthMax]uint64 {
	var bases [depthMax]uint64
	for i := 1; i < depthMax; i++ {
		bases[i-1] = (kind >> (idLength * i)) & idMask
	}
	return bases
}

// Kind packs id together with every id of its bases so IsKind can test
// ancestry with shifts and masks only.
func Kind(id uint64, bases ...uint64) uint64 {
	id = id & idMask
	ids := make(map[uint64]struct{})

	for _, base := range bases {
		for j := 0; j < depthMax; j++ {
			baseId := (base >> (idLength * j)) & idMask
			if baseId == 0 {
				break
			}
			if _, ok := ids[baseId]; !ok {
				ids[baseId] = struct{}{}
				id |= baseId << (idLength * len(ids))
			}
		}
	}
	return id
}

// IsKind reports whether kind is, or derives from, any of bases.
func IsKind(kind uint64, bases ...uint64) bool {
	for _, base := range bases {
		baseId := base & idMask
		if kind == baseId {
			return true
		}
		for i := 0; i < depthMax; i++ {
			currentId := (kind >> (idLength * i)) & idMask
			if currentId == baseId {
				return true
			}
		}
	}
	return false
}

var (
	Null    = Kind(0)
	Element = Kind(1)

	State   = Kind(2, Element)
	Initial = Kind(3, State)
	Partial = Kind(4, State)
	Accept  = Kind(5, State)

	Transition = Kind(6, Element)
	Advance    = Kind(7, Transition)
	Fallback   = Kind(8, Transition)
	Restart    = Kind(9, Transition)
	// out of the accept state
	Overlap = Kind(10, Transition)
	Rewind  = Kind(11, Restart)
)

// Name returns a short lower-case label for the most specific known kind.
func Name(kind uint64) string {
	switch kind {
	case Initial:
		return "initial"
	case Partial:
		return "partial"
	case Accept:
		return "accept"
	case Advance:
		return "advance"
	case Fallback:
		return "fallback"
	case Restart:
		return "restart"
	case Overlap:
		return "overlap"
	case Rewind:
		return "rewind"
	case State:
		return "state"
	case Transition:
		return "transition"
	case Element:
		return "element"
	}
	return "null"
}
