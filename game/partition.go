package game

import "railway/utils"

// StationPartition groups stations into connected components. Each entry
// holds the representative of its station's component.
type StationPartition struct {
	representatives []int
}

func (p StationPartition) Connected(s1, s2 Station) bool {
	if s1.ID >= len(p.representatives) || s2.ID >= len(p.representatives) {
		return s1.ID == s2.ID
	}
	return p.representatives[s1.ID] == p.representatives[s2.ID]
}

type PartitionBuilder struct {
	representatives []int
}

// NewPartitionBuilder starts with every station in its own component.
func NewPartitionBuilder(stationCount int) *PartitionBuilder {
	utils.CheckArgument(stationCount >= 0, "negative station count %d", stationCount)
	reps := make([]int, stationCount)
	for i := range reps {
		reps[i] = i
	}
	return &PartitionBuilder{representatives: reps}
}

func (b *PartitionBuilder) representative(id int) int {
	for b.representatives[id] != id {
		id = b.representatives[id]
	}
	return id
}

func (b *PartitionBuilder) Connect(s1, s2 Station) *PartitionBuilder {
	b.representatives[b.representative(s2.ID)] = b.representative(s1.ID)
	return b
}

// Build flattens the components so each station points at its representative.
func (b *PartitionBuilder) Build() StationPartition {
	flat := make([]int, len(b.representatives))
	for i := range flat {
		flat[i] = b.representative(i)
	}
	return StationPartition{representatives: flat}
}
