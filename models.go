package hudu

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Company is a Hudu company record.
type Company struct {
	ID              int        `json:"id,omitempty"`
	Name            string     `json:"name"`
	PhoneNumber     *string    `json:"phone_number,omitempty"`
	Website         *string    `json:"website,omitempty"`
	City            *string    `json:"city,omitempty"`
	State           *string    `json:"state,omitempty"`
	Zip             *string    `json:"zip,omitempty"`
	CountryName     *string    `json:"country_name,omitempty"`
	CompanyType     *string    `json:"company_type,omitempty"`
	ParentCompanyID *int       `json:"parent_company_id,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Archived        *bool      `json:"archived,omitempty"`
	FullURL         *string    `json:"full_url,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func (c *Company) UnmarshalJSON(data []byte) error {
	obj, err := parseRawObject(data)
	if err != nil {
		return err
	}

	if c.ID, err = obj.requiredID("id"); err != nil {
		return err
	}
	if c.Name, err = obj.requiredString("name"); err != nil {
		return err
	}
	if c.PhoneNumber, err = obj.optionalString("phone_number"); err != nil {
		return err
	}
	if c.Website, err = obj.optionalString("website"); err != nil {
		return err
	}
	if c.City, err = obj.optionalString("city"); err != nil {
		return err
	}
	if c.State, err = obj.optionalString("state"); err != nil {
		return err
	}
	if c.Zip, err = obj.optionalString("zip"); err != nil {
		return err
	}
	if c.CountryName, err = obj.optionalString("country_name"); err != nil {
		return err
	}
	if c.CompanyType, err = obj.optionalString("company_type"); err != nil {
		return err
	}
	if c.ParentCompanyID, err = obj.optionalInt("parent_company_id"); err != nil {
		return err
	}
	if c.Notes, err = obj.optionalString("notes"); err != nil {
		return err
	}
	if c.Archived, err = obj.optionalBool("archived"); err != nil {
		return err
	}
	if c.FullURL, err = obj.optionalString("full_url"); err != nil {
		return err
	}
	if c.CreatedAt, err = obj.optionalTime("created_at"); err != nil {
		return err
	}
	c.UpdatedAt, err = obj.optionalTime("updated_at")
	return err
}

// AssetField is a single layout-defined field on an asset. Value keeps
// whatever JSON shape the layout produced; escaped JSON strings are unwrapped
// when they parse, since Hudu double-encodes structured field values.
type AssetField struct {
	ID       int     `json:"id"`
	Label    *string `json:"label,omitempty"`
	Position int     `json:"position"`
	Value    any     `json:"value,omitempty"`
}

func (f *AssetField) UnmarshalJSON(data []byte) error {
	obj, err := parseRawObject(data)
	if err != nil {
		return err
	}

	if f.ID, err = obj.requiredID("id"); err != nil {
		return err
	}
	if f.Label, err = obj.optionalString("label"); err != nil {
		return err
	}
	if f.Position, err = obj.requiredInt("position"); err != nil {
		return err
	}

	if raw := obj["value"]; !isNull(raw) {
		if err := json.Unmarshal(raw, &f.Value); err != nil {
			return &ValidationError{Field: "value", Expected: "JSON value"}
		}
		f.Value = unwrapEscapedJSON(f.Value)
	}

	return nil
}

// unwrapEscapedJSON decodes string values that themselves contain JSON. The
// original payload is kept when the inner decode fails.
func unwrapEscapedJSON(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	if !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
		return v
	}
	if strings.Contains(s, `\"`) {
		if unquoted, err := strconv.Unquote(`"` + s + `"`); err == nil {
			s = unquoted
		}
	}
	var inner any
	if err := json.Unmarshal([]byte(s), &inner); err != nil {
		return v
	}
	return inner
}

// IntegratorCard describes an integration with an external system attached
// to an asset.
type IntegratorCard struct {
	ID             int            `json:"id"`
	IntegratorID   int            `json:"integrator_id"`
	IntegratorName string         `json:"integrator_name"`
	SyncID         int            `json:"sync_id"`
	SyncIdentifier *string        `json:"sync_identifier,omitempty"`
	SyncType       string         `json:"sync_type"`
	PrimaryField   *string        `json:"primary_field,omitempty"`
	Link           string         `json:"link"`
	Data           map[string]any `json:"data,omitempty"`
}

func (c *IntegratorCard) UnmarshalJSON(data []byte) error {
	obj, err := parseRawObject(data)
	if err != nil {
		return err
	}

	if c.ID, err = obj.requiredID("id"); err != nil {
		return err
	}
	if c.IntegratorID, err = obj.requiredInt("integrator_id"); err != nil {
		return err
	}
	if c.IntegratorName, err = obj.requiredString("integrator_name"); err != nil {
		return err
	}
	if c.SyncID, err = obj.requiredInt("sync_id"); err != nil {
		return err
	}
	if c.SyncIdentifier, err = obj.optionalString("sync_identifier"); err != nil {
		return err
	}
	if c.SyncType, err = obj.requiredString("sync_type"); err != nil {
		return err
	}
	if c.PrimaryField, err = obj.optionalString("primary_field"); err != nil {
		return err
	}
	if c.Link, err = obj.requiredString("link"); err != nil {
		return err
	}

	if raw := obj["data"]; !isNull(raw) {
		if err := json.Unmarshal(raw, &c.Data); err != nil {
			return &ValidationError{Field: "data", Expected: "object"}
		}
	}

	return nil
}

// Asset is a Hudu asset record, including its layout fields and integrator
// cards when the API expands them.
type Asset struct {
	ID                  int              `json:"id,omitempty"`
	Name                string           `json:"name"`
	CompanyID           int              `json:"company_id,omitempty"`
	CompanyName         *string          `json:"company_name,omitempty"`
	AssetLayoutID       int              `json:"asset_layout_id,omitempty"`
	PrimarySerial       *string          `json:"primary_serial,omitempty"`
	PrimaryMail         *string          `json:"primary_mail,omitempty"`
	PrimaryModel        *string          `json:"primary_model,omitempty"`
	PrimaryManufacturer *string          `json:"primary_manufacturer,omitempty"`
	Archived            *bool            `json:"archived,omitempty"`
	ObjectType          *string          `json:"object_type,omitempty"`
	AssetType           *string          `json:"asset_type,omitempty"`
	URL                 *string          `json:"url,omitempty"`
	CreatedAt           *time.Time       `json:"created_at,omitempty"`
	UpdatedAt           *time.Time       `json:"updated_at,omitempty"`
	Fields              []AssetField     `json:"fields,omitempty"`
	Cards               []IntegratorCard `json:"cards,omitempty"`
}

func (a *Asset) UnmarshalJSON(data []byte) error {
	obj, err := parseRawObject(data)
	if err != nil {
		return err
	}

	if a.ID, err = obj.requiredID("id"); err != nil {
		return err
	}
	if a.Name, err = obj.requiredString("name"); err != nil {
		return err
	}
	if a.CompanyID, err = obj.requiredInt("company_id"); err != nil {
		return err
	}
	if a.CompanyName, err = obj.optionalString("company_name"); err != nil {
		return err
	}
	if a.AssetLayoutID, err = obj.requiredInt("asset_layout_id"); err != nil {
		return err
	}
	if a.PrimarySerial, err = obj.optionalString("primary_serial"); err != nil {
		return err
	}
	if a.PrimaryMail, err = obj.optionalString("primary_mail"); err != nil {
		return err
	}
	if a.PrimaryModel, err = obj.optionalString("primary_model"); err != nil {
		return err
	}
	if a.PrimaryManufacturer, err = obj.optionalString("primary_manufacturer"); err != nil {
		return err
	}
	if a.Archived, err = obj.optionalBool("archived"); err != nil {
		return err
	}
	if a.ObjectType, err = obj.optionalString("object_type"); err != nil {
		return err
	}
	if a.AssetType, err = obj.optionalString("asset_type"); err != nil {
		return err
	}
	if a.URL, err = obj.optionalString("url"); err != nil {
		return err
	}
	if a.CreatedAt, err = obj.optionalTime("created_at"); err != nil {
		return err
	}
	if a.UpdatedAt, err = obj.optionalTime("updated_at"); err != nil {
		return err
	}

	if raw := obj["fields"]; !isNull(raw) {
		if a.Fields, err = parseList[AssetField](raw); err != nil {
			return err
		}
	}
	if raw := obj["cards"]; !isNull(raw) {
		if a.Cards, err = parseList[IntegratorCard](raw); err != nil {
			return err
		}
	}

	return nil
}

// AssetLayout describes the shape of an asset type.
type AssetLayout struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Icon             *string `json:"icon,omitempty"`
	Color            *string `json:"color,omitempty"`
	IconColor        *string `json:"icon_color,omitempty"`
	IncludePasswords bool    `json:"include_passwords"`
	IncludePhotos    bool    `json:"include_photos"`
	IncludeComments  bool    `json:"include_comments"`
	IncludeFiles     bool    `json:"include_files"`
	Active           bool    `json:"active"`
}

func (l *AssetLayout) UnmarshalJSON(data []byte) error {
	obj, err := parseRawObject(data)
	if err != nil {
		return err
	}

	if l.ID, err = obj.requiredID("id"); err != nil {
		return err
	}
	if l.Name, err = obj.requiredString("name"); err != nil {
		return err
	}
	if l.Icon, err = obj.optionalString("icon"); err != nil {
		return err
	}
	if l.Color, err = obj.optionalString("color"); err != nil {
		return err
	}
	if l.IconColor, err = obj.optionalString("icon_color"); err != nil {
		return err
	}
	if l.IncludePasswords, err = obj.requiredBool("include_passwords"); err != nil {
		return err
	}
	if l.IncludePhotos, err = obj.requiredBool("include_photos"); err != nil {
		return err
	}
	if l.IncludeComments, err = obj.requiredBool("include_comments"); err != nil {
		return err
	}
	if l.IncludeFiles, err = obj.requiredBool("include_files"); err != nil {
		return err
	}
	l.Active, err = obj.requiredBool("active")
	return err
}

// AssetPassword is a credential record. Password fields pass through
// untouched; redaction is the caller's concern.
type AssetPassword struct {
	ID                 int        `json:"id"`
	PasswordableID     *int       `json:"passwordable_id,omitempty"`
	PasswordableType   *string    `json:"passwordable_type,omitempty"`
	CompanyID          int        `json:"company_id"`
	Name               string     `json:"name"`
	Username           *string    `json:"username,omitempty"`
	Slug               *string    `json:"slug,omitempty"`
	Description        *string    `json:"description,omitempty"`
	Password           string     `json:"password"`
	OTPSecret          *string    `json:"otp_secret,omitempty"`
	PasswordType       *string    `json:"password_type,omitempty"`
	URL                *string    `json:"url,omitempty"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
	PasswordFolderID   *int       `json:"password_folder_id,omitempty"`
	PasswordFolderName *string    `json:"password_folder_name,omitempty"`
	LoginURL           *string    `json:"login_url,omitempty"`
}

func (p *AssetPassword) UnmarshalJSON(data []byte) error {
	obj, err := parseRawObject(data)
	if err != nil {
		return err
	}

	if p.ID, err = obj.requiredID("id"); err != nil {
		return err
	}
	if p.PasswordableID, err = obj.optionalInt("passwordable_id"); err != nil {
		return err
	}
	if p.PasswordableType, err = obj.optionalString("passwordable_type"); err != nil {
		return err
	}
	if p.CompanyID, err = obj.requiredInt("company_id"); err != nil {
		return err
	}
	if p.Name, err = obj.requiredString("name"); err != nil {
		return err
	}
	if p.Username, err = obj.optionalString("username"); err != nil {
		return err
	}
	if p.Slug, err = obj.optionalString("slug"); err != nil {
		return err
	}
	if p.Description, err = obj.optionalString("description"); err != nil {
		return err
	}
	if p.Password, err = obj.requiredString("password"); err != nil {
		return err
	}
	if p.OTPSecret, err = obj.optionalString("otp_secret"); err != nil {
		return err
	}
	if p.PasswordType, err = obj.optionalString("password_type"); err != nil {
		return err
	}
	if p.URL, err = obj.optionalString("url"); err != nil {
		return err
	}
	if p.CreatedAt, err = obj.optionalTime("created_at"); err != nil {
		return err
	}
	if p.UpdatedAt, err = obj.optionalTime("updated_at"); err != nil {
		return err
	}
	if p.PasswordFolderID, err = obj.optionalInt("password_folder_id"); err != nil {
		return err
	}
	if p.PasswordFolderName, err = obj.optionalString("password_folder_name"); err != nil {
		return err
	}
	p.LoginURL, err = obj.optionalString("login_url")
	return err
}

// Article is a knowledge-base article.
type Article struct {
	ID            int     `json:"id,omitempty"`
	Name          string  `json:"name"`
	Content       *string `json:"content,omitempty"`
	FolderID      *int    `json:"folder_id,omitempty"`
	CompanyID     *int    `json:"company_id,omitempty"`
	EnableSharing bool    `json:"enable_sharing"`
	Draft         bool    `json:"draft"`
}

func (a *Article) UnmarshalJSON(data []byte) error {
	obj, err := parseRawObject(data)
	if err != nil {
		return err
	}

	if a.ID, err = obj.requiredID("id"); err != nil {
		return err
	}
	if a.Name, err = obj.requiredString("name"); err != nil {
		return err
	}
	if a.Content, err = obj.optionalString("content"); err != nil {
		return err
	}
	if a.FolderID, err = obj.optionalInt("folder_id"); err != nil {
		return err
	}
	if a.CompanyID, err = obj.optionalInt("company_id"); err != nil {
		return err
	}
	if a.EnableSharing, err = obj.boolOrDefault("enable_sharing", false); err != nil {
		return err
	}
	a.Draft, err = obj.boolOrDefault("draft", false)
	return err
}

// Relation links two Hudu records together.
type Relation struct {
	ID           int     `json:"id"`
	Description  *string `json:"description,omitempty"`
	IsInverse    *bool   `json:"is_inverse,omitempty"`
	Name         *string `json:"name,omitempty"`
	FromableID   *int    `json:"fromable_id,omitempty"`
	FromableType *string `json:"fromable_type,omitempty"`
	ToableID     *int    `json:"toable_id,omitempty"`
	ToableType   *string `json:"toable_type,omitempty"`
	ToableURL    *string `json:"toable_url,omitempty"`
}

func (r *Relation) UnmarshalJSON(data []byte) error {
	obj, err := parseRawObject(data)
	if err != nil {
		return err
	}

	if r.ID, err = obj.requiredID("id"); err != nil {
		return err
	}
	if r.Description, err = obj.optionalString("description"); err != nil {
		return err
	}
	if r.IsInverse, err = obj.optionalBool("is_inverse"); err != nil {
		return err
	}
	if r.Name, err = obj.optionalString("name"); err != nil {
		return err
	}
	if r.FromableID, err = obj.optionalInt("fromable_id"); err != nil {
		return err
	}
	if r.FromableType, err = obj.optionalString("fromable_type"); err != nil {
		return err
	}
	if r.ToableID, err = obj.optionalInt("toable_id"); err != nil {
		return err
	}
	if r.ToableType, err = obj.optionalString("toable_type"); err != nil {
		return err
	}
	r.ToableURL, err = obj.optionalString("toable_url")
	return err
}

// Upload is a file attached to a Hudu record. Size and dates arrive as
// strings from the API.
type Upload struct {
	ID             int     `json:"id"`
	URL            *string `json:"url,omitempty"`
	Name           *string `json:"name,omitempty"`
	Ext            *string `json:"ext,omitempty"`
	Mime           *string `json:"mime,omitempty"`
	Size           *string `json:"size,omitempty"`
	CreatedDate    *string `json:"created_date,omitempty"`
	ArchivedAt     *string `json:"archived_at,omitempty"`
	UploadableID   *int    `json:"uploadable_id,omitempty"`
	UploadableType *string `json:"uploadable_type,omitempty"`
}

func (u *Upload) UnmarshalJSON(data []byte) error {
	obj, err := parseRawObject(data)
	if err != nil {
		return err
	}

	if u.ID, err = obj.requiredID("id"); err != nil {
		return err
	}
	if u.URL, err = obj.optionalString("url"); err != nil {
		return err
	}
	if u.Name, err = obj.optionalString("name"); err != nil {
		return err
	}
	if u.Ext, err = obj.optionalString("ext"); err != nil {
		return err
	}
	if u.Mime, err = obj.optionalString("mime"); err != nil {
		return err
	}
	if u.Size, err = obj.optionalString("size"); err != nil {
		return err
	}
	if u.CreatedDate, err = obj.optionalString("created_date"); err != nil {
		return err
	}
	if u.ArchivedAt, err = obj.optionalString("archived_at"); err != nil {
		return err
	}
	if u.UploadableID, err = obj.optionalInt("uploadable_id"); err != nil {
		return err
	}
	u.UploadableType, err = obj.optionalString("uploadable_type")
	return err
}
