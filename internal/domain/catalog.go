package domain

// Settings is the operator-editable configuration document (config.json)
type Settings struct {
	OpenAIAPIKey string `json:"openai_api_key"`
}

// Competitor holds the competitor site the catalog is matched against
type Competitor struct {
	RootURL string `json:"root_url"`
}

// NormalizedProduct is a catalog row reduced to the fields matching cares about
type NormalizedProduct struct {
	Product string `json:"product"`
	Code    string `json:"code"`
}

// Match is a proposed correspondence between a catalog product and a competitor link
type Match struct {
	Product    string  `json:"product"`
	Code       string  `json:"code"`
	Link       string  `json:"link"`
	Confidence float64 `json:"confidence"` // 0-1
}

// DashboardSummary is the at-a-glance state shown on the dashboard page
type DashboardSummary struct {
	ProductCount     int
	MatchCount       int
	APIKeyConfigured bool
	CompetitorRoot   string
}
