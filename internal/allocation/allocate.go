// Package allocation ranks style dimensions per structural role.
//
// A StyleMix is normalized to weights summing to 1, then biased twice: first by the
// task's content type, then by the segment's role. Every bump is clamped into [0, 1]
// on its own. The biased weights are re-normalized and ranked; the top two become the
// primary and secondary styles of the segment.
package allocation

import (
	"sort"

	"github.com/jonathan/style-remixer/internal/types"
)

// ThirdStyleThreshold is the rank-3 score above which a role is flagged as not cleanly bipolar.
const ThirdStyleThreshold = 0.28

// Normalize scales mix so the four weights sum to 1. Negative weights count as 0, and a
// mix whose total is then not positive becomes the uniform mix.
func Normalize(mix types.StyleMix) types.Scores {
	total := 0.0
	for _, d := range types.Dimensions {
		total += max(mix.Get(d), 0)
	}
	scores := make(types.Scores, len(types.Dimensions))
	if total <= 0 {
		for _, d := range types.Dimensions {
			scores[d] = 1.0 / float64(len(types.Dimensions))
		}
		return scores
	}
	for _, d := range types.Dimensions {
		scores[d] = max(mix.Get(d), 0) / total
	}
	return scores
}

// ComputeAllocations computes one allocation per role with the rewrite bias profile.
func ComputeAllocations(mix types.StyleMix, contentType types.ContentType, roles []types.Role) []types.Allocation {
	return RewriteProfile.Compute(mix, contentType, roles)
}

// Compute computes one allocation per role, aligned by index.
func (p *BiasProfile) Compute(mix types.StyleMix, contentType types.ContentType, roles []types.Role) []types.Allocation {
	base := Normalize(mix)
	allocations := make([]types.Allocation, 0, len(roles))
	for _, role := range roles {
		allocations = append(allocations, p.allocate(base, contentType, role))
	}
	return allocations
}

// ComputeForCount assigns roles for count segments and computes their allocations.
func (p *BiasProfile) ComputeForCount(mix types.StyleMix, contentType types.ContentType, count int) []types.Allocation {
	return p.Compute(mix, contentType, AssignRoles(count))
}

func (p *BiasProfile) allocate(base types.Scores, contentType types.ContentType, role types.Role) types.Allocation {
	weights := make(types.Scores, len(base))
	for d, v := range base {
		weights[d] = v
	}

	apply(weights, p.ContentBumps(contentType))
	apply(weights, p.RoleBumps(role))

	sum := weights.Sum()
	if sum <= 0 {
		sum = base.Sum()
	}
	if sum <= 0 {
		sum = 1
	}

	scores := make(types.Scores, len(weights))
	for _, d := range types.Dimensions {
		scores[d] = weights[d] / sum
	}

	ranked := Rank(scores)
	allocation := types.Allocation{
		Role:      role,
		Primary:   ranked[0],
		Secondary: ranked[1],
		Scores:    scores,
	}
	if scores[ranked[2]] > ThirdStyleThreshold {
		allocation.Warning = types.ThirdStyleWarning
	}
	return allocation
}

func apply(weights types.Scores, bumps []Bump) {
	for _, b := range bumps {
		weights[b.Dimension] = clamp(weights[b.Dimension]+b.Delta, 0, 1)
	}
}

// Rank orders the dimensions by descending score. Ties keep canonical dimension order.
func Rank(scores types.Scores) []types.Dimension {
	ranked := make([]types.Dimension, len(types.Dimensions))
	copy(ranked, types.Dimensions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}

func clamp(value, lo, hi float64) float64 {
	return min(max(value, lo), hi)
}
