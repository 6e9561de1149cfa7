package hudu

import "context"

// HuduAPIClient defines the interface for Hudu API operations.
// This interface enables consumers to create mock implementations for
// testing. All methods mirror the corresponding methods on Client.
//
//nolint:revive // HuduAPIClient is intentionally explicit to avoid confusion with the Client struct
type HuduAPIClient interface {
	// Companies operations

	// GetCompanies lists companies, following pagination to the end.
	GetCompanies(ctx context.Context, params *CompanyListParams) Result[[]Company]

	// GetCompany fetches a single company by ID.
	GetCompany(ctx context.Context, companyID int) Result[Company]

	// CreateCompany creates a company and returns the created record.
	CreateCompany(ctx context.Context, company Company) Result[Company]

	// UpdateCompany updates a company and returns the updated record.
	UpdateCompany(ctx context.Context, companyID int, company Company) Result[Company]

	// DeleteCompany deletes a company.
	DeleteCompany(ctx context.Context, companyID int) Result[struct{}]

	// Assets operations

	// GetAssets lists assets across all companies.
	GetAssets(ctx context.Context, params *AssetListParams) Result[[]Asset]

	// GetCompanyAssets lists the assets of one company.
	GetCompanyAssets(ctx context.Context, companyID int, params *CompanyAssetListParams) Result[[]Asset]

	// GetCompanyAsset fetches a single asset of a company.
	GetCompanyAsset(ctx context.Context, companyID, assetID int) Result[Asset]

	// CreateAsset creates an asset under a company.
	CreateAsset(ctx context.Context, companyID int, asset Asset) Result[Asset]

	// UpdateAsset updates an asset and returns the updated record.
	UpdateAsset(ctx context.Context, companyID, assetID int, asset Asset) Result[Asset]

	// DeleteAsset deletes an asset.
	DeleteAsset(ctx context.Context, companyID, assetID int) Result[struct{}]

	// Asset layout operations

	// GetAssetLayouts lists asset layouts.
	GetAssetLayouts(ctx context.Context, params *AssetLayoutListParams) Result[[]AssetLayout]

	// GetAssetLayout fetches a single asset layout by ID.
	GetAssetLayout(ctx context.Context, layoutID int) Result[AssetLayout]

	// Articles operations

	// GetArticles lists knowledge-base articles.
	GetArticles(ctx context.Context, params *ArticleListParams) Result[[]Article]

	// GetArticle fetches a single article by ID.
	GetArticle(ctx context.Context, articleID int) Result[Article]

	// CreateArticle creates an article and returns the created record.
	CreateArticle(ctx context.Context, article Article) Result[Article]

	// UpdateArticle updates an article and returns the updated record.
	UpdateArticle(ctx context.Context, articleID int, article Article) Result[Article]

	// DeleteArticle deletes an article.
	DeleteArticle(ctx context.Context, articleID int) Result[struct{}]

	// Asset password operations

	// GetAssetPasswords lists credential records.
	GetAssetPasswords(ctx context.Context, params *AssetPasswordListParams) Result[[]AssetPassword]

	// Relations operations

	// GetRelations lists relations between records.
	GetRelations(ctx context.Context, params *ListParams) Result[[]Relation]

	// Uploads operations

	// GetUploads lists file uploads.
	GetUploads(ctx context.Context, params *ListParams) Result[[]Upload]
}
