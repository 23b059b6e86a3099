package cards

// defaultEffectiveness is the stock matchup chart loaded by seeding. Pairs
// not listed here have no entry at all; a lookup on them is a NotFound, not
// an implicit "false".
var defaultEffectiveness = []*Effectiveness{
	{fire, plant, true},
	{fire, frost, true},
	{fire, water, false},
	{water, fire, true},
	{water, plant, false},
	{water, poison, false},
	{plant, water, true},
	{plant, fire, false},
	{earth, lightning, true},
	{earth, poison, true},
	{earth, wind, false},
	{lightning, water, true},
	{lightning, wind, true},
	{lightning, earth, false},
	{frost, plant, true},
	{frost, wind, true},
	{frost, fire, false},
	{wind, earth, true},
	{wind, lightning, false},
	{light, dark, true},
	{dark, light, true},
	{dark, magic, true},
	{magic, arms, true},
	{magic, dark, false},
	{arms, ore, true},
	{arms, magic, false},
	{ore, arms, true},
	{ore, lightning, true},
	{poison, plant, true},
	{poison, water, true},
	{poison, ore, false},
}
