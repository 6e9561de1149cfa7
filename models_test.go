package hudu

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("minimal object", func(t *testing.T) {
		t.Parallel()

		var c Company
		require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":"Acme"}`), &c))
		assert.Equal(t, 7, c.ID)
		assert.Equal(t, "Acme", c.Name)
		assert.Nil(t, c.Website)
		assert.Nil(t, c.CreatedAt)
	})

	t.Run("full object", func(t *testing.T) {
		t.Parallel()

		payload := `{
			"id": 7,
			"name": "Acme",
			"phone_number": "555-0100",
			"website": "https://acme.example",
			"city": "Springfield",
			"parent_company_id": 3,
			"archived": false,
			"created_at": "2023-05-01T10:30:00Z"
		}`

		var c Company
		require.NoError(t, json.Unmarshal([]byte(payload), &c))
		require.NotNil(t, c.Website)
		assert.Equal(t, "https://acme.example", *c.Website)
		require.NotNil(t, c.ParentCompanyID)
		assert.Equal(t, 3, *c.ParentCompanyID)
		require.NotNil(t, c.Archived)
		assert.False(t, *c.Archived)
		require.NotNil(t, c.CreatedAt)
		assert.Equal(t, 2023, c.CreatedAt.Year())
	})

	t.Run("missing required field names the field", func(t *testing.T) {
		t.Parallel()

		var c Company
		err := json.Unmarshal([]byte(`{"id":7}`), &c)
		verr, ok := IsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "name", verr.Field)
		assert.Equal(t, "string", verr.Expected)
	})

	t.Run("wrong type names the field", func(t *testing.T) {
		t.Parallel()

		var c Company
		err := json.Unmarshal([]byte(`{"id":"seven","name":"Acme"}`), &c)
		verr, ok := IsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "id", verr.Field)
	})

	t.Run("null required field fails", func(t *testing.T) {
		t.Parallel()

		var c Company
		err := json.Unmarshal([]byte(`{"id":7,"name":null}`), &c)
		verr, ok := IsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "name", verr.Field)
	})

	t.Run("non-positive id fails", func(t *testing.T) {
		t.Parallel()

		var c Company
		err := json.Unmarshal([]byte(`{"id":0,"name":"Acme"}`), &c)
		verr, ok := IsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "id", verr.Field)
		assert.Equal(t, "positive integer", verr.Expected)
	})

	t.Run("unknown fields ignored", func(t *testing.T) {
		t.Parallel()

		var c Company
		require.NoError(t, json.Unmarshal([]byte(`{"id":7,"name":"Acme","brand_new_field":{"x":1}}`), &c))
		assert.Equal(t, "Acme", c.Name)
	})
}

func TestAssetUnmarshal(t *testing.T) {
	t.Parallel()

	payload := `{
		"id": 10,
		"name": "mail01",
		"company_id": 7,
		"asset_layout_id": 2,
		"primary_serial": "SN-1234",
		"fields": [
			{"id": 1, "label": "Hostname", "position": 1, "value": "mail01.acme.example"},
			{"id": 2, "label": "Ports", "position": 2, "value": "[25,465,587]"}
		],
		"cards": [
			{
				"id": 5,
				"integrator_id": 3,
				"integrator_name": "cw_manage",
				"sync_id": 99,
				"sync_type": "configuration",
				"link": "https://example/config/99",
				"data": {"status": "Active"}
			}
		]
	}`

	var a Asset
	require.NoError(t, json.Unmarshal([]byte(payload), &a))

	assert.Equal(t, 10, a.ID)
	assert.Equal(t, 7, a.CompanyID)
	require.Len(t, a.Fields, 2)
	assert.Equal(t, "mail01.acme.example", a.Fields[0].Value)

	// Escaped JSON field values are unwrapped into real structures.
	assert.Equal(t, []any{float64(25), float64(465), float64(587)}, a.Fields[1].Value)

	require.Len(t, a.Cards, 1)
	assert.Equal(t, "cw_manage", a.Cards[0].IntegratorName)
	assert.Equal(t, "Active", a.Cards[0].Data["status"])
}

func TestAssetUnmarshalBadField(t *testing.T) {
	t.Parallel()

	payload := `{
		"id": 10,
		"name": "mail01",
		"company_id": 7,
		"asset_layout_id": 2,
		"fields": [{"id": 1, "position": "first"}]
	}`

	var a Asset
	err := json.Unmarshal([]byte(payload), &a)
	verr, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "position", verr.Field)
}

func TestUnwrapEscapedJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{
			name: "plain string untouched",
			in:   "mail01",
			want: "mail01",
		},
		{
			name: "non-string untouched",
			in:   float64(42),
			want: float64(42),
		},
		{
			name: "embedded object decoded",
			in:   `{"vlan":10}`,
			want: map[string]any{"vlan": float64(10)},
		},
		{
			name: "escaped quotes unquoted then decoded",
			in:   `{\"vlan\":10}`,
			want: map[string]any{"vlan": float64(10)},
		},
		{
			name: "malformed inner JSON kept verbatim",
			in:   `{not json`,
			want: `{not json`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, unwrapEscapedJSON(tt.in))
		})
	}
}

func TestAssetLayoutUnmarshal(t *testing.T) {
	t.Parallel()

	payload := `{
		"id": 2,
		"name": "Server",
		"icon": "fas fa-server",
		"include_passwords": true,
		"include_photos": false,
		"include_comments": true,
		"include_files": false,
		"active": true
	}`

	var l AssetLayout
	require.NoError(t, json.Unmarshal([]byte(payload), &l))
	assert.Equal(t, "Server", l.Name)
	assert.True(t, l.IncludePasswords)
	assert.False(t, l.IncludeFiles)

	// Flag booleans are required on layouts.
	var bad AssetLayout
	err := json.Unmarshal([]byte(`{"id":2,"name":"Server"}`), &bad)
	verr, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "include_passwords", verr.Field)
}

func TestArticleUnmarshalDefaults(t *testing.T) {
	t.Parallel()

	var a Article
	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"name":"Onboarding"}`), &a))

	// Sharing and draft flags default to false when the API omits them.
	assert.False(t, a.EnableSharing)
	assert.False(t, a.Draft)
	assert.Nil(t, a.CompanyID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"name":"Onboarding","draft":true}`), &a))
	assert.True(t, a.Draft)
}

func TestAssetPasswordUnmarshal(t *testing.T) {
	t.Parallel()

	payload := `{
		"id": 12,
		"company_id": 7,
		"name": "admin portal",
		"username": "admin",
		"password": "hunter2",
		"otp_secret": "JBSWY3DP"
	}`

	var p AssetPassword
	require.NoError(t, json.Unmarshal([]byte(payload), &p))
	assert.Equal(t, "hunter2", p.Password)
	require.NotNil(t, p.OTPSecret)
	assert.Equal(t, "JBSWY3DP", *p.OTPSecret)

	var bad AssetPassword
	err := json.Unmarshal([]byte(`{"id":12,"company_id":7,"name":"admin portal"}`), &bad)
	verr, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "password", verr.Field)
}

func TestRelationUnmarshal(t *testing.T) {
	t.Parallel()

	payload := `{
		"id": 3,
		"name": "mail01 -> Acme",
		"fromable_id": 10,
		"fromable_type": "Asset",
		"toable_id": 7,
		"toable_type": "Company",
		"is_inverse": false
	}`

	var r Relation
	require.NoError(t, json.Unmarshal([]byte(payload), &r))
	require.NotNil(t, r.FromableType)
	assert.Equal(t, "Asset", *r.FromableType)
	require.NotNil(t, r.ToableID)
	assert.Equal(t, 7, *r.ToableID)
}

func TestUploadUnmarshal(t *testing.T) {
	t.Parallel()

	payload := `{
		"id": 9,
		"name": "diagram.png",
		"ext": "png",
		"mime": "image/png",
		"size": "48213",
		"uploadable_id": 10,
		"uploadable_type": "Asset"
	}`

	var u Upload
	require.NoError(t, json.Unmarshal([]byte(payload), &u))
	require.NotNil(t, u.Size)
	assert.Equal(t, "48213", *u.Size)
	require.NotNil(t, u.UploadableType)
	assert.Equal(t, "Asset", *u.UploadableType)
}

func TestParseList(t *testing.T) {
	t.Parallel()

	t.Run("order preserved", func(t *testing.T) {
		t.Parallel()

		items, err := parseList[Company]([]byte(`[{"id":1,"name":"a"},{"id":2,"name":"b"},{"id":3,"name":"c"}]`))
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, []int{1, 2, 3}, []int{items[0].ID, items[1].ID, items[2].ID})
	})

	t.Run("bad element reports index", func(t *testing.T) {
		t.Parallel()

		_, err := parseList[Company]([]byte(`[{"id":1,"name":"a"},{"id":2}]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "element 1")

		verr, ok := IsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "name", verr.Field)
	})

	t.Run("not an array", func(t *testing.T) {
		t.Parallel()

		_, err := parseList[Company]([]byte(`{"id":1}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected JSON array")
	})
}
