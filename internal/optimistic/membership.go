package optimistic

// MembershipSet is the in-memory relationship cache a mounted view seeds
// from an initial bulk read and mutates through Toggle. It is not safe for
// concurrent use; a view owns its set and drives it from a single goroutine.
type MembershipSet struct {
	members map[string]struct{}
}

// NewMembershipSet creates a set seeded with ids
func NewMembershipSet(ids ...string) *MembershipSet {
	s := &MembershipSet{members: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.members[id] = struct{}{}
	}
	return s
}

func (s *MembershipSet) Has(id string) bool {
	_, ok := s.members[id]
	return ok
}

func (s *MembershipSet) Add(id string) {
	s.members[id] = struct{}{}
}

func (s *MembershipSet) Remove(id string) {
	delete(s.members, id)
}

// Flip toggles membership of id and reports the new state.
func (s *MembershipSet) Flip(id string) bool {
	if s.Has(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

func (s *MembershipSet) Len() int {
	return len(s.members)
}

// Snapshot returns an independent copy of the current membership, suitable
// as the restore point for Toggle.
func (s *MembershipSet) Snapshot() map[string]struct{} {
	snap := make(map[string]struct{}, len(s.members))
	for id := range s.members {
		snap[id] = struct{}{}
	}
	return snap
}

// Restore replaces the membership with a previously taken snapshot.
func (s *MembershipSet) Restore(snap map[string]struct{}) {
	s.members = make(map[string]struct{}, len(snap))
	for id := range snap {
		s.members[id] = struct{}{}
	}
}
