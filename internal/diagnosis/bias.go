package diagnosis

// Adjuster is a contextual bias rule applied once to a finished score table,
// before ranking.
type Adjuster interface {
	Name() string
	Adjust(ctx SessionContext, scores ScoreTable)
}

// DefaultAdjusters returns the built-in bias rules in application order.
func DefaultAdjusters() []Adjuster {
	return []Adjuster{
		DefaultProfileBias(),
		DefaultLoadBias(),
	}
}

// ApplyBias runs every adjuster over scores in order.
func ApplyBias(adjusters []Adjuster, ctx SessionContext, scores ScoreTable) {
	for _, a := range adjusters {
		a.Adjust(ctx, scores)
	}
}

// ProfileWeight is the increment the profile bias adds to each code.
const ProfileWeight = 1

// ProfileBias adds a fixed increment to a profile-specific set of codes.
// Profiles without an entry use Fallback.
type ProfileBias struct {
	Codes    map[Profile][]string
	Fallback []string
	Weight   int
}

// DefaultProfileBias returns the built-in per-profile code sets.
func DefaultProfileBias() *ProfileBias {
	return &ProfileBias{
		Codes: map[Profile][]string{
			ProfileRelationship: {"201", "202", "102", "E200", "E220"},
			ProfileWork:         {"003", "301", "303", "E300", "E510", "E500"},
			ProfileCounsel:      {"004", "104", "101", "E200", "E210", "E330"},
			ProfileSolo:         {"005", "E320", "E330", "E011"},
		},
		Fallback: []string{"E300", "004"},
		Weight:   ProfileWeight,
	}
}

func (b *ProfileBias) Name() string { return "profile" }

// CodesFor returns the codes boosted for profile p.
func (b *ProfileBias) CodesFor(p Profile) []string {
	if codes, ok := b.Codes[p]; ok {
		return codes
	}
	return b.Fallback
}

func (b *ProfileBias) Adjust(ctx SessionContext, scores ScoreTable) {
	for _, code := range b.CodesFor(ctx.Profile) {
		scores.Add(code, b.Weight)
	}
}

// LoadTier adds Increments once the load level reaches Threshold.
type LoadTier struct {
	Threshold  int
	Increments map[string]int
}

// LoadBias applies every tier whose threshold the load level reaches, so a
// higher tier always includes the lower ones.
type LoadBias struct {
	Tiers []LoadTier
}

// DefaultLoadBias returns the built-in load tiers.
func DefaultLoadBias() *LoadBias {
	return &LoadBias{
		Tiers: []LoadTier{
			{Threshold: 6, Increments: map[string]int{"E300": 1, "E320": 1}},
			{Threshold: 8, Increments: map[string]int{"E130": 3, "001": 2, "004": 1}},
		},
	}
}

func (b *LoadBias) Name() string { return "load" }

func (b *LoadBias) Adjust(ctx SessionContext, scores ScoreTable) {
	for _, tier := range b.Tiers {
		if ctx.LoadLevel >= tier.Threshold {
			scores.Apply(tier.Increments)
		}
	}
}
