package allocation

import "github.com/jonathan/style-remixer/internal/types"

// Bump is a single additive adjustment to one dimension.
// Each bump is clamped into [0, 1] as soon as it is applied.
type Bump struct {
	Dimension types.Dimension
	Delta     float64
}

// BiasProfile holds the content-type and role bias tables.
// Bumps are applied in slice order; content-type bumps run before role bumps.
type BiasProfile struct {
	Name    string
	Content map[types.ContentType][]Bump
	Role    map[types.Role][]Bump
}

// RewriteProfile drives the paragraph rewrite path.
var RewriteProfile = &BiasProfile{
	Name: "rewrite",
	Content: map[types.ContentType][]Bump{
		types.ContentNews: {
			{types.DimensionStructure, 0.06},
			{types.DimensionDistribution, -0.04},
		},
		types.ContentNovel: {
			{types.DimensionPerception, 0.06},
			{types.DimensionStructure, -0.03},
		},
		types.ContentAudio: {
			{types.DimensionDistribution, 0.06},
		},
	},
	Role: map[types.Role][]Bump{
		types.RoleOpening: {
			{types.DimensionStructure, 0.05},
			{types.DimensionDistribution, 0.03},
		},
		types.RoleDevelopment: {
			{types.DimensionPerception, 0.04},
		},
		types.RoleTurn: {
			{types.DimensionMeaning, 0.07},
		},
		types.RoleClosing: {
			{types.DimensionMeaning, 0.05},
			{types.DimensionDistribution, 0.02},
		},
	},
}

// DiagnosticProfile drives the structure plan and the sentence heatmap.
// It leans slightly harder than RewriteProfile.
var DiagnosticProfile = &BiasProfile{
	Name: "diagnostic",
	Content: map[types.ContentType][]Bump{
		types.ContentNews: {
			{types.DimensionStructure, 0.07},
			{types.DimensionDistribution, -0.05},
		},
		types.ContentNovel: {
			{types.DimensionPerception, 0.07},
			{types.DimensionStructure, -0.03},
		},
		types.ContentAudio: {
			{types.DimensionDistribution, 0.08},
		},
	},
	Role: map[types.Role][]Bump{
		types.RoleOpening: {
			{types.DimensionStructure, 0.06},
			{types.DimensionDistribution, 0.03},
		},
		types.RoleDevelopment: {
			{types.DimensionPerception, 0.05},
		},
		types.RoleTurn: {
			{types.DimensionMeaning, 0.08},
		},
		types.RoleClosing: {
			{types.DimensionMeaning, 0.05},
			{types.DimensionDistribution, 0.02},
		},
	},
}

// ContentBumps returns the bumps for a content type; unknown types get none.
func (p *BiasProfile) ContentBumps(ct types.ContentType) []Bump {
	return p.Content[ct]
}

// RoleBumps returns the bumps for a role; unknown roles get none.
func (p *BiasProfile) RoleBumps(role types.Role) []Bump {
	return p.Role[role]
}
