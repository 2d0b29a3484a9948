package capability

// Snapshot holds the declared capability set of every role. It is a
// value type; modifying methods return a copy.
type Snapshot struct {
	sets [roleCount]Set
}

// NewSnapshot returns a snapshot with the given per-role sets. Roles
// missing from caps have the empty set.
func NewSnapshot(caps map[Role]Set) Snapshot {
	var s Snapshot
	for r, set := range caps {
		if r < roleCount {
			s.sets[r] = set
		}
	}
	return s
}

// DefaultSnapshot returns the compiled-in capabilities used when no
// provider is registered for a role: every role is undeclared.
func DefaultSnapshot() Snapshot {
	return Snapshot{}
}

// For returns the declared set of role r.
func (s Snapshot) For(r Role) Set {
	if r >= roleCount {
		return 0
	}
	return s.sets[r]
}

// With returns a copy of s with role r set to caps.
func (s Snapshot) With(r Role, caps Set) Snapshot {
	if r < roleCount {
		s.sets[r] = caps
	}
	return s
}
