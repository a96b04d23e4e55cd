package ecs

import (
	"sort"
)

// StorageStats summarizes the contents of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes a single archetype.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks the storage and returns a snapshot of its shape.
// Empty archetypes are left out.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		SingletonCount: len(s.singletons),
	}

	for _, archetype := range s.archetypes {
		if archetype.Len() == 0 {
			continue
		}

		names := make([]string, len(archetype.types))
		for i, typ := range archetype.types {
			names[i] = typ.String()
		}

		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    archetype.Len(),
		})
		stats.TotalEntityCount += archetype.Len()
	}
	stats.ArchetypeCount = len(stats.ArchetypeBreakdown)

	sort.Slice(stats.ArchetypeBreakdown, func(i, j int) bool {
		return stats.ArchetypeBreakdown[i].EntityCount > stats.ArchetypeBreakdown[j].EntityCount
	})

	for typ := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
