package models

// RobotsFindings is the parsed state of a site's robots.txt. A fetch
// failure leaves Status zero and Error set; the rule slices stay empty.
type RobotsFindings struct {
	URL                      string   `json:"url"`
	Status                   int      `json:"status,omitempty"`
	Error                    string   `json:"error,omitempty"`
	DisallowRules            []string `json:"disallow_rules"`
	SitemapLines             []string `json:"sitemap_lines"`
	PotentiallyBlockingRules []string `json:"potentially_blocking_rules"`
	// Discovery paths a "*" crawl group is actually denied access to,
	// verified against the parsed robots group.
	BlockedProbePaths []string `json:"blocked_probe_paths,omitempty"`
}

// SitemapProbe records the outcome of checking one candidate sitemap path.
type SitemapProbe struct {
	Path         string   `json:"path"`
	URL          string   `json:"url"`
	Status       int      `json:"status,omitempty"`
	Error        string   `json:"error,omitempty"`
	Exists       bool     `json:"exists"`
	ContentType  string   `json:"content_type,omitempty"`
	LastmodHints []string `json:"lastmod_hints"`
}

// Discovery groups the robots and sitemap checks run against the site root.
type Discovery struct {
	Robots   RobotsFindings `json:"robots"`
	Sitemaps []SitemapProbe `json:"sitemaps"`
}

// FeedEntry is one normalized item from an RSS or Atom feed. Dates stay
// raw strings; no calendar normalization happens anywhere in the pipeline.
type FeedEntry struct {
	Title         string `json:"title"`
	Link          string `json:"link"`
	PubDate       string `json:"pub_date"`
	HasImage      bool   `json:"has_image"`
	ContentLength int    `json:"content_length"`
	LooksExcerpt  bool   `json:"looks_excerpt"`
}

// FeedCandidate is one discovered feed URL with its fetch and parse outcome.
type FeedCandidate struct {
	URL        string      `json:"url"`
	Status     int         `json:"status,omitempty"`
	Error      string      `json:"error,omitempty"`
	Items      []FeedEntry `json:"items"`
	ParseError string      `json:"parse_error,omitempty"`
}

// FeedReport covers feed discovery, the selected candidate, per-item
// coverage stats and the ingestion-risk verdict.
type FeedReport struct {
	DiscoveredFeedURLs     []string        `json:"discovered_feed_urls"`
	HomepageDiscoveryError string          `json:"homepage_discovery_error,omitempty"`
	CheckedFeeds           []FeedCandidate `json:"checked_feeds"`
	SelectedFeedURL        string          `json:"selected_feed_url,omitempty"`
	SelectedFeedStatus     int             `json:"selected_feed_status,omitempty"`
	ItemCount              int             `json:"item_count"`
	ItemsWithTitle         int             `json:"items_with_title"`
	ItemsWithLink          int             `json:"items_with_link"`
	ItemsWithDate          int             `json:"items_with_date"`
	ItemsWithImage         int             `json:"items_with_image"`
	ExcerptLikeItems       int             `json:"excerpt_like_items"`
	AvgContentLength       float64         `json:"avg_content_length"`
	NewsBreakRisk          bool            `json:"newsbreak_risk"`
	NewsBreakRiskReasons   []string        `json:"newsbreak_risk_reasons"`
	Items                  []FeedEntry     `json:"items"`
}

// CanonicalFinding describes the canonical link of one article page.
type CanonicalFinding struct {
	Exists            bool   `json:"exists"`
	URL               string `json:"url,omitempty"`
	ConsistentWithURL bool   `json:"consistent_with_url"`
}

// MetaRobotsFinding is the page-level robots meta directive.
type MetaRobotsFinding struct {
	Content string `json:"content,omitempty"`
	Noindex bool   `json:"noindex"`
}

// OpenGraphFinding maps the audited og: properties to presence flags plus
// parsed image dimensions (nil when absent or unparsable).
type OpenGraphFinding struct {
	Title       bool   `json:"og:title"`
	Type        bool   `json:"og:type"`
	URL         bool   `json:"og:url"`
	Image       bool   `json:"og:image"`
	ImageWidth  *int   `json:"og:image:width"`
	ImageHeight *int   `json:"og:image:height"`
	ImageValue  string `json:"og:image_value,omitempty"`
}

// JSONLDFinding summarizes the structured data blocks of one page.
type JSONLDFinding struct {
	EntityCount        int      `json:"entity_count"`
	ArticleEntityCount int      `json:"article_entity_count"`
	MissingFields      []string `json:"missing_fields"`
}

// PerformanceFinding counts script-related render risks in the head.
type PerformanceFinding struct {
	RenderBlockingScripts int `json:"render_blocking_scripts"`
	HugeInlineScripts     int `json:"huge_inline_scripts"`
}

// ArticleFinding is everything extracted from one sampled article URL.
// A failed fetch keeps only URL and Error; Status zero means no response.
type ArticleFinding struct {
	URL                    string             `json:"url"`
	Status                 int                `json:"status,omitempty"`
	Error                  string             `json:"error,omitempty"`
	ResponseSizeBytes      int                `json:"response_size_bytes,omitempty"`
	Canonical              CanonicalFinding   `json:"canonical"`
	MetaRobots             MetaRobotsFinding  `json:"meta_robots"`
	OpenGraph              OpenGraphFinding   `json:"open_graph"`
	PublicationDateVisible bool               `json:"publication_date_visible_html"`
	JSONLD                 JSONLDFinding      `json:"jsonld"`
	Performance            PerformanceFinding `json:"performance"`
}

// MissingOGCounts holds per-field missing counts over fetched articles.
type MissingOGCounts struct {
	Title int `json:"og:title"`
	Type  int `json:"og:type"`
	URL   int `json:"og:url"`
	Image int `json:"og:image"`
}

// MissingJSONLDCounts holds per-required-field missing counts. The
// author/publisher keys use the <field>.name labels the analyzer emits.
type MissingJSONLDCounts struct {
	Headline      int `json:"headline"`
	DatePublished int `json:"datePublished"`
	DateModified  int `json:"dateModified"`
	AuthorName    int `json:"author.name"`
	PublisherName int `json:"publisher.name"`
	Image         int `json:"image"`
}

// AuditAggregate reduces the fetched article findings into counts. Ratios
// downstream always divide by Fetched, never Sampled.
type AuditAggregate struct {
	Sampled                  int                 `json:"sampled"`
	Fetched                  int                 `json:"fetched"`
	MissingCanonical         int                 `json:"missing_canonical"`
	CanonicalMismatch        int                 `json:"canonical_mismatch"`
	NoindexPages             int                 `json:"noindex_pages"`
	MissingOGFields          MissingOGCounts     `json:"missing_og_fields"`
	MissingPublicationDate   int                 `json:"missing_publication_date_html"`
	MissingJSONLDArticle     int                 `json:"missing_jsonld_article"`
	JSONLDMissingFieldCounts MissingJSONLDCounts `json:"jsonld_missing_field_counts"`
	AvgResponseSizeBytes     int                 `json:"avg_response_size_bytes"`
	HighBlockingScriptPages  int                 `json:"high_blocking_script_pages"`
	HugeInlineScriptPages    int                 `json:"huge_inline_script_pages"`
	MissingOGImageDimensions int                 `json:"missing_og_image_dimensions"`
}

// ArticleReport is the article-sampling section of the audit record.
type ArticleReport struct {
	SampleURLs []string         `json:"sample_urls"`
	Pages      []ArticleFinding `json:"pages"`
	Summary    AuditAggregate   `json:"summary"`
}

// Issue is one prioritized remediation item derived from an audit run.
type Issue struct {
	Priority string `json:"priority"`
	Title    string `json:"title"`
	Evidence string `json:"evidence"`
	Fix      string `json:"fix"`
}

// Issue priority tiers, most severe first.
const (
	PriorityP0 = "P0"
	PriorityP1 = "P1"
	PriorityP2 = "P2"
)

// AuditResult is the complete record of one audit run.
type AuditResult struct {
	Site        string        `json:"site"`
	GeneratedAt string        `json:"generated_at"`
	Discovery   Discovery     `json:"discovery"`
	Feed        FeedReport    `json:"feed"`
	Articles    ArticleReport `json:"articles"`
}
