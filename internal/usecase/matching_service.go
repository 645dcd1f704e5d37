package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/matchboard/backend/internal/domain"
)

const (
	// DefaultConfidence is the score the search-link matcher assigns to every product
	DefaultConfidence = 0.42

	searchPath = "/search?q="
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	Confidence         float64
	EnableDebugLogging bool
}

// SearchLinkMatcher is the placeholder domain.Matcher: it points every
// product at the competitor's search page for its code.
type SearchLinkMatcher struct {
	confidence         float64
	enableDebugLogging bool
	logger             *zap.Logger
}

// NewSearchLinkMatcher creates a matcher with the given configuration
func NewSearchLinkMatcher(config MatchConfig, logger *zap.Logger) *SearchLinkMatcher {
	confidence := config.Confidence
	if confidence <= 0 {
		confidence = DefaultConfidence
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &SearchLinkMatcher{
		confidence:         confidence,
		enableDebugLogging: config.EnableDebugLogging,
		logger:             logger,
	}
}

// Match builds one match per product, in input order
func (m *SearchLinkMatcher) Match(
	ctx context.Context,
	products []domain.NormalizedProduct,
	competitorRoot string,
) ([]domain.Match, error) {
	matches := make([]domain.Match, 0, len(products))

	for _, product := range products {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		match := domain.Match{
			Product:    product.Product,
			Code:       product.Code,
			Link:       BuildSearchLink(competitorRoot, product.Code),
			Confidence: m.confidence,
		}

		if m.enableDebugLogging {
			m.logger.Debug("match built",
				zap.String("product", match.Product),
				zap.String("code", match.Code),
				zap.String("link", match.Link))
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// BuildSearchLink returns root/search?q=code, or root unchanged when there is no code.
// The code is appended as-is.
func BuildSearchLink(root, code string) string {
	if code == "" {
		return root
	}
	return strings.TrimRight(root, "/") + searchPath + code
}
