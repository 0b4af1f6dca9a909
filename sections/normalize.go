package sections

import (
	"github.com/google/uuid"
)

// IDGenerator produces process-unique section identifiers.
type IDGenerator func() uuid.UUID

// Normalize repairs a section list loaded from storage so it is safe to hand
// to editing code that keys state by section ID: missing or duplicate IDs are
// replaced with fresh ones, nil content bags become empty bags, and order is
// reindexed to the dense positional invariant. The repair is mandatory on
// load because an ID collision makes two sections indistinguishable to the
// editor and silently corrupts edit state.
//
// The input slice is not mutated; repaired sections are clones.
func Normalize(list []*Section, gen IDGenerator) []*Section {
	if gen == nil {
		gen = uuid.New
	}

	out := make([]*Section, 0, len(list))
	seen := make(map[uuid.UUID]struct{}, len(list))
	for _, section := range list {
		if section == nil {
			continue
		}
		repaired := section.Clone()
		if repaired.Content == nil {
			repaired.Content = PropertyBag{}
		}
		if _, dup := seen[repaired.ID]; repaired.ID == uuid.Nil || dup {
			repaired.ID = freshID(gen, seen)
		}
		seen[repaired.ID] = struct{}{}
		out = append(out, repaired)
	}

	Reindex(out)
	return out
}

// Reindex re-derives Order from list position: sections[i].Order = i.
func Reindex(list []*Section) {
	for i, section := range list {
		if section != nil {
			section.Order = i
		}
	}
}

func freshID(gen IDGenerator, seen map[uuid.UUID]struct{}) uuid.UUID {
	for {
		id := gen()
		if id == uuid.Nil {
			id = uuid.New()
		}
		if _, ok := seen[id]; !ok {
			return id
		}
	}
}
