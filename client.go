package hudu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Client is the high-level Hudu client. Every method returns a Result:
// low-level typed errors and model validation failures both surface as the
// failure branch, never as a panic or a half-filled value.
type Client struct {
	api *API
}

// Compile-time check that Client covers the full API surface.
var _ HuduAPIClient = (*Client)(nil)

// New creates a client with default settings: 300 calls per 60-second
// sliding window, 3 retries with exponential backoff, 30-second timeout.
func New(baseURL, apiKey string) (*Client, error) {
	return NewWithConfig(&ClientConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
	})
}

// NewWithConfig creates a client with custom configuration.
func NewWithConfig(cfg *ClientConfig) (*Client, error) {
	api, err := NewAPI(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{api: api}, nil
}

// NewFromEnv creates a client configured from the HUDU_BASE_URL and
// HUDU_API_KEY environment variables. Construction fails when either is
// missing.
func NewFromEnv() (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// API exposes the low-level client for callers that want raw JSON and
// conventional error returns.
func (c *Client) API() *API {
	return c.api
}

// listAll fetches every page of a list endpoint and parses the items.
func listAll[T any](ctx context.Context, c *Client, path, envelopeKey string, query url.Values, opts PageOptions) Result[[]T] {
	items, err := c.api.GetPaged(ctx, path, envelopeKey, query, opts)
	if err != nil {
		return Err[[]T](err)
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return Err[[]T](errors.Wrapf(err, "item %d", i))
		}
		out = append(out, v)
	}

	return Ok(out)
}

// getOne fetches and parses a single entity, unwrapping its envelope.
func getOne[T any](ctx context.Context, c *Client, path, envelopeKey string) Result[T] {
	body, err := c.api.Get(ctx, path, nil)
	if err != nil {
		return Err[T](err)
	}
	return parseOne[T](body, envelopeKey)
}

// writeOne sends an enveloped write and parses the entity the API echoes
// back.
func writeOne[T any](body json.RawMessage, sendErr error, envelopeKey string) Result[T] {
	if sendErr != nil {
		return Err[T](sendErr)
	}
	return parseOne[T](body, envelopeKey)
}

func parseOne[T any](body json.RawMessage, envelopeKey string) Result[T] {
	var v T
	if err := json.Unmarshal(unwrapEnvelope(body, envelopeKey), &v); err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

// envelope wraps a write payload the way the API expects:
// {"company": {...}}.
func envelope(key string, v any) map[string]any {
	return map[string]any{key: v}
}

func setIfNotEmpty(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}

func setIfPositive(q url.Values, key string, val int) {
	if val > 0 {
		q.Set(key, strconv.Itoa(val))
	}
}

func setIfBool(q url.Values, key string, val *bool) {
	if val != nil {
		q.Set(key, strconv.FormatBool(*val))
	}
}

// CompanyListParams filters GetCompanies.
type CompanyListParams struct {
	Name        string
	PhoneNumber string
	Website     string
	Page        int
	PageSize    int
}

func (p *CompanyListParams) query() (url.Values, PageOptions) {
	q := url.Values{}
	if p == nil {
		return q, PageOptions{}
	}
	setIfNotEmpty(q, "name", p.Name)
	setIfNotEmpty(q, "phone_number", p.PhoneNumber)
	setIfNotEmpty(q, "website", p.Website)
	return q, PageOptions{Page: p.Page, PageSize: p.PageSize}
}

// GetCompanies lists companies, following pagination to the end.
func (c *Client) GetCompanies(ctx context.Context, params *CompanyListParams) Result[[]Company] {
	q, opts := params.query()
	return listAll[Company](ctx, c, "companies", "companies", q, opts)
}

// GetCompany fetches a single company by ID.
func (c *Client) GetCompany(ctx context.Context, companyID int) Result[Company] {
	return getOne[Company](ctx, c, fmt.Sprintf("companies/%d", companyID), "company")
}

// CreateCompany creates a company and returns the created record.
func (c *Client) CreateCompany(ctx context.Context, company Company) Result[Company] {
	body, err := c.api.Post(ctx, "companies", envelope("company", company))
	return writeOne[Company](body, err, "company")
}

// UpdateCompany updates a company and returns the updated record.
func (c *Client) UpdateCompany(ctx context.Context, companyID int, company Company) Result[Company] {
	body, err := c.api.Put(ctx, fmt.Sprintf("companies/%d", companyID), envelope("company", company))
	return writeOne[Company](body, err, "company")
}

// DeleteCompany deletes a company.
func (c *Client) DeleteCompany(ctx context.Context, companyID int) Result[struct{}] {
	if err := c.api.Delete(ctx, fmt.Sprintf("companies/%d", companyID)); err != nil {
		return Err[struct{}](err)
	}
	return Ok(struct{}{})
}

// AssetListParams filters GetAssets.
type AssetListParams struct {
	ID            int
	Name          string
	PrimarySerial string
	AssetLayoutID int
	Archived      *bool
	Slug          string
	Search        string
	UpdatedAt     string
	Page          int
	PageSize      int
}

func (p *AssetListParams) query() (url.Values, PageOptions) {
	q := url.Values{}
	if p == nil {
		return q, PageOptions{}
	}
	setIfPositive(q, "id", p.ID)
	setIfNotEmpty(q, "name", p.Name)
	setIfNotEmpty(q, "primary_serial", p.PrimarySerial)
	setIfPositive(q, "asset_layout_id", p.AssetLayoutID)
	setIfBool(q, "archived", p.Archived)
	setIfNotEmpty(q, "slug", p.Slug)
	setIfNotEmpty(q, "search", p.Search)
	setIfNotEmpty(q, "updated_at", p.UpdatedAt)
	return q, PageOptions{Page: p.Page, PageSize: p.PageSize}
}

// GetAssets lists assets across all companies.
func (c *Client) GetAssets(ctx context.Context, params *AssetListParams) Result[[]Asset] {
	q, opts := params.query()
	return listAll[Asset](ctx, c, "assets", "assets", q, opts)
}

// CompanyAssetListParams filters GetCompanyAssets.
type CompanyAssetListParams struct {
	Name     string
	Archived *bool
	Page     int
	PageSize int
}

func (p *CompanyAssetListParams) query() (url.Values, PageOptions) {
	q := url.Values{}
	if p == nil {
		return q, PageOptions{}
	}
	setIfNotEmpty(q, "name", p.Name)
	setIfBool(q, "archived", p.Archived)
	return q, PageOptions{Page: p.Page, PageSize: p.PageSize}
}

// GetCompanyAssets lists the assets of one company.
func (c *Client) GetCompanyAssets(ctx context.Context, companyID int, params *CompanyAssetListParams) Result[[]Asset] {
	q, opts := params.query()
	return listAll[Asset](ctx, c, fmt.Sprintf("companies/%d/assets", companyID), "assets", q, opts)
}

// GetCompanyAsset fetches a single asset of a company.
func (c *Client) GetCompanyAsset(ctx context.Context, companyID, assetID int) Result[Asset] {
	return getOne[Asset](ctx, c, fmt.Sprintf("companies/%d/assets/%d", companyID, assetID), "asset")
}

// CreateAsset creates an asset under a company.
func (c *Client) CreateAsset(ctx context.Context, companyID int, asset Asset) Result[Asset] {
	body, err := c.api.Post(ctx, fmt.Sprintf("companies/%d/assets", companyID), envelope("asset", asset))
	return writeOne[Asset](body, err, "asset")
}

// UpdateAsset updates an asset and returns the updated record.
func (c *Client) UpdateAsset(ctx context.Context, companyID, assetID int, asset Asset) Result[Asset] {
	body, err := c.api.Put(ctx, fmt.Sprintf("companies/%d/assets/%d", companyID, assetID), envelope("asset", asset))
	return writeOne[Asset](body, err, "asset")
}

// DeleteAsset deletes an asset.
func (c *Client) DeleteAsset(ctx context.Context, companyID, assetID int) Result[struct{}] {
	if err := c.api.Delete(ctx, fmt.Sprintf("companies/%d/assets/%d", companyID, assetID)); err != nil {
		return Err[struct{}](err)
	}
	return Ok(struct{}{})
}

// AssetLayoutListParams filters GetAssetLayouts.
type AssetLayoutListParams struct {
	Name string
	Page int
}

func (p *AssetLayoutListParams) query() (url.Values, PageOptions) {
	q := url.Values{}
	if p == nil {
		return q, PageOptions{}
	}
	setIfNotEmpty(q, "name", p.Name)
	return q, PageOptions{Page: p.Page}
}

// GetAssetLayouts lists asset layouts.
func (c *Client) GetAssetLayouts(ctx context.Context, params *AssetLayoutListParams) Result[[]AssetLayout] {
	q, opts := params.query()
	return listAll[AssetLayout](ctx, c, "asset_layouts", "asset_layouts", q, opts)
}

// GetAssetLayout fetches a single asset layout by ID.
func (c *Client) GetAssetLayout(ctx context.Context, layoutID int) Result[AssetLayout] {
	return getOne[AssetLayout](ctx, c, fmt.Sprintf("asset_layouts/%d", layoutID), "asset_layout")
}

// ArticleListParams filters GetArticles.
type ArticleListParams struct {
	CompanyID int
	Name      string
	Draft     *bool
	Page      int
	PageSize  int
}

func (p *ArticleListParams) query() (url.Values, PageOptions) {
	q := url.Values{}
	if p == nil {
		return q, PageOptions{}
	}
	setIfPositive(q, "company_id", p.CompanyID)
	setIfNotEmpty(q, "name", p.Name)
	setIfBool(q, "draft", p.Draft)
	return q, PageOptions{Page: p.Page, PageSize: p.PageSize}
}

// GetArticles lists knowledge-base articles.
func (c *Client) GetArticles(ctx context.Context, params *ArticleListParams) Result[[]Article] {
	q, opts := params.query()
	return listAll[Article](ctx, c, "articles", "articles", q, opts)
}

// GetArticle fetches a single article by ID.
func (c *Client) GetArticle(ctx context.Context, articleID int) Result[Article] {
	return getOne[Article](ctx, c, fmt.Sprintf("articles/%d", articleID), "article")
}

// CreateArticle creates an article and returns the created record.
func (c *Client) CreateArticle(ctx context.Context, article Article) Result[Article] {
	body, err := c.api.Post(ctx, "articles", envelope("article", article))
	return writeOne[Article](body, err, "article")
}

// UpdateArticle updates an article and returns the updated record.
func (c *Client) UpdateArticle(ctx context.Context, articleID int, article Article) Result[Article] {
	body, err := c.api.Put(ctx, fmt.Sprintf("articles/%d", articleID), envelope("article", article))
	return writeOne[Article](body, err, "article")
}

// DeleteArticle deletes an article.
func (c *Client) DeleteArticle(ctx context.Context, articleID int) Result[struct{}] {
	if err := c.api.Delete(ctx, fmt.Sprintf("articles/%d", articleID)); err != nil {
		return Err[struct{}](err)
	}
	return Ok(struct{}{})
}

// AssetPasswordListParams filters GetAssetPasswords.
type AssetPasswordListParams struct {
	Name      string
	CompanyID int
	Slug      string
	Search    string
	UpdatedAt string
	Page      int
	PageSize  int
}

func (p *AssetPasswordListParams) query() (url.Values, PageOptions) {
	q := url.Values{}
	if p == nil {
		return q, PageOptions{}
	}
	setIfNotEmpty(q, "name", p.Name)
	setIfPositive(q, "company_id", p.CompanyID)
	setIfNotEmpty(q, "slug", p.Slug)
	setIfNotEmpty(q, "search", p.Search)
	setIfNotEmpty(q, "updated_at", p.UpdatedAt)
	return q, PageOptions{Page: p.Page, PageSize: p.PageSize}
}

// GetAssetPasswords lists credential records.
func (c *Client) GetAssetPasswords(ctx context.Context, params *AssetPasswordListParams) Result[[]AssetPassword] {
	q, opts := params.query()
	return listAll[AssetPassword](ctx, c, "asset_passwords", "asset_passwords", q, opts)
}

// ListParams carries bare pagination for endpoints without filters.
type ListParams struct {
	Page     int
	PageSize int
}

func (p *ListParams) query() (url.Values, PageOptions) {
	if p == nil {
		return url.Values{}, PageOptions{}
	}
	return url.Values{}, PageOptions{Page: p.Page, PageSize: p.PageSize}
}

// GetRelations lists relations between records.
func (c *Client) GetRelations(ctx context.Context, params *ListParams) Result[[]Relation] {
	q, opts := params.query()
	return listAll[Relation](ctx, c, "relations", "relations", q, opts)
}

// GetUploads lists file uploads.
func (c *Client) GetUploads(ctx context.Context, params *ListParams) Result[[]Upload] {
	q, opts := params.query()
	return listAll[Upload](ctx, c, "uploads", "uploads", q, opts)
}
