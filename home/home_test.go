package home

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcraft/catalog"
	"tripcraft/models"
)

func TestRegions(t *testing.T) {
	h := NewHandler(catalog.DefaultRegions())

	rec := httptest.NewRecorder()
	h.Regions(rec, httptest.NewRequest(http.MethodGet, "/api/regions?lng=hy", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, staticCacheControl, rec.Header().Get("Cache-Control"))

	var body struct {
		Items []Region `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 11)
	assert.Equal(t, "Երևան", body.Items[0].Name)
	assert.Equal(t, catalog.Yerevan, body.Items[0].ID)
	assert.Nil(t, body.Items[1].DistanceKm, "Aragatsotn has no distance")
}

func TestInfoLocalized(t *testing.T) {
	rec := httptest.NewRecorder()
	GetInfo(rec, httptest.NewRequest(http.MethodGet, "/api/info?lng=en", nil), nil)
	var got Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, info[models.LangEn], got)
}

func TestPartners(t *testing.T) {
	rec := httptest.NewRecorder()
	GetPartners(rec, httptest.NewRequest(http.MethodGet, "/api/partners", nil), nil)
	assert.Contains(t, rec.Body.String(), "Dilijan Hotel")
}

func TestSearchCompanions(t *testing.T) {
	tests := []struct {
		body string
		code int
		ids  []string
	}{
		{`{}`, http.StatusOK, []string{"c_1", "c_2"}},
		{`{"interests":["Food"]}`, http.StatusOK, []string{"c_1"}},
		{`{"regions":["Tavush"]}`, http.StatusOK, []string{"c_2"}},
		{`{"interests":["hiking"],"regions":["Yerevan"]}`, http.StatusOK, []string{}},
		{`{"startDate":"soon"}`, http.StatusBadRequest, nil},
		{`{"interests":"food"}`, http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		SearchCompanions(rec, httptest.NewRequest(http.MethodPost, "/api/companions/search", strings.NewReader(tt.body)), nil)
		require.Equal(t, tt.code, rec.Code, tt.body)
		if tt.code != http.StatusOK {
			continue
		}
		var body struct {
			Items []models.Companion `json:"items"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		ids := []string{}
		for _, c := range body.Items {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, tt.ids, ids, tt.body)
	}
}
