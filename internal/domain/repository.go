package domain

import "context"

// ProductRepository persists the uploaded catalog rows
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]Record, error)
	ReplaceProducts(ctx context.Context, products []Record) error
}

// MatchRepository persists generated or edited matches
type MatchRepository interface {
	ListMatches(ctx context.Context) ([]Match, error)
	ReplaceMatches(ctx context.Context, matches []Match) error
}

// SettingsRepository persists the settings document
type SettingsRepository interface {
	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, settings Settings) error
}

// CompetitorRepository persists the competitor document
type CompetitorRepository interface {
	GetCompetitor(ctx context.Context) (Competitor, error)
	SaveCompetitor(ctx context.Context, competitor Competitor) error
}

// Matcher proposes competitor links for normalized catalog products.
// Implementations must return exactly one match per input product, in order.
type Matcher interface {
	Match(ctx context.Context, products []NormalizedProduct, competitorRoot string) ([]Match, error)
}
