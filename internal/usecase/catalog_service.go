package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/matchboard/backend/internal/domain"
	"github.com/matchboard/backend/internal/infrastructure/spreadsheet"
)

// CompetitorNotSet is shown, and used as the link root, when no competitor is stored
const CompetitorNotSet = "Не вказано"

// CatalogStore is everything the catalog service persists
type CatalogStore interface {
	domain.ProductRepository
	domain.MatchRepository
	domain.SettingsRepository
	domain.CompetitorRepository
}

// CatalogService coordinates uploads, settings and matching for the web layer
type CatalogService struct {
	store   CatalogStore
	matcher domain.Matcher
	logger  *zap.Logger
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(store CatalogStore, matcher domain.Matcher, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		store:   store,
		matcher: matcher,
		logger:  logger,
	}
}

// Summary collects the dashboard counters
func (s *CatalogService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	apiKey, err := s.APIKey(ctx)
	if err != nil {
		return nil, err
	}
	root, err := s.CompetitorRoot(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		ProductCount:     len(products),
		MatchCount:       len(matches),
		APIKeyConfigured: apiKey != "",
		CompetitorRoot:   root,
	}, nil
}

// ImportSpreadsheet parses an uploaded file and replaces the product store
// with its rows. Nothing is written when parsing fails.
func (s *CatalogService) ImportSpreadsheet(ctx context.Context, filename string, r io.Reader) (int, error) {
	records, err := spreadsheet.Read(filename, r)
	if err != nil {
		s.logger.Warn("spreadsheet rejected", zap.String("filename", filename), zap.Error(err))
		return 0, err
	}

	if err := s.store.ReplaceProducts(ctx, records); err != nil {
		return 0, err
	}

	s.logger.Info("catalog imported", zap.String("filename", filename), zap.Int("products", len(records)))
	return len(records), nil
}

// Products returns the stored catalog rows
func (s *CatalogService) Products(ctx context.Context) ([]domain.Record, error) {
	return s.store.ListProducts(ctx)
}

// Matches returns the stored matches
func (s *CatalogService) Matches(ctx context.Context) ([]domain.Match, error) {
	return s.store.ListMatches(ctx)
}

// APIKey returns the configured API key, possibly empty
func (s *CatalogService) APIKey(ctx context.Context) (string, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	return settings.OpenAIAPIKey, nil
}

// SaveAPIKey trims and stores the API key. An empty key is allowed and
// disables matching.
func (s *CatalogService) SaveAPIKey(ctx context.Context, apiKey string) error {
	settings := domain.Settings{OpenAIAPIKey: strings.TrimSpace(apiKey)}
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return err
	}
	s.logger.Info("settings saved", zap.Bool("api_key_configured", settings.OpenAIAPIKey != ""))
	return nil
}

// CompetitorRoot returns the stored competitor root URL or CompetitorNotSet
func (s *CatalogService) CompetitorRoot(ctx context.Context) (string, error) {
	competitor, err := s.store.GetCompetitor(ctx)
	if err != nil {
		return "", err
	}
	if competitor.RootURL == "" {
		return CompetitorNotSet, nil
	}
	return competitor.RootURL, nil
}

// SaveCompetitorRoot trims and stores the competitor root URL
func (s *CatalogService) SaveCompetitorRoot(ctx context.Context, rootURL string) error {
	competitor := domain.Competitor{RootURL: strings.TrimSpace(rootURL)}
	if err := s.store.SaveCompetitor(ctx, competitor); err != nil {
		return err
	}
	s.logger.Info("competitor saved", zap.String("root_url", competitor.RootURL))
	return nil
}

// RunMatch regenerates the match store from the catalog.
// Flow: check API key -> normalize products -> match -> replace store
func (s *CatalogService) RunMatch(ctx context.Context) ([]domain.Match, error) {
	apiKey, err := s.APIKey(ctx)
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		return nil, domain.ErrAPIKeyMissing
	}

	records, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	root, err := s.CompetitorRoot(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := s.matcher.Match(ctx, NormalizeProducts(records), root)
	if err != nil {
		return nil, fmt.Errorf("matching failed: %w", err)
	}

	if err := s.store.ReplaceMatches(ctx, matches); err != nil {
		return nil, err
	}

	s.logger.Info("matches generated", zap.Int("products", len(records)), zap.Int("matches", len(matches)))
	return matches, nil
}

// SaveMatches replaces the match store with operator-edited matches
func (s *CatalogService) SaveMatches(ctx context.Context, matches []domain.Match) error {
	if err := s.store.ReplaceMatches(ctx, matches); err != nil {
		return err
	}
	s.logger.Info("matches saved", zap.Int("matches", len(matches)))
	return nil
}
