package listquery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var testSortColumns = map[string]string{
	"createdAt": "created_at",
	"amount":    "amount",
}

func paramsFor(t *testing.T, rawQuery string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/records?"+rawQuery, nil)
	return Parse(c, testSortColumns, "createdAt")
}

func TestParse_Defaults(t *testing.T) {
	p := paramsFor(t, "")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, "created_at", p.SortBy)
	assert.Equal(t, "desc", p.SortOrder)
	assert.Equal(t, "created_at DESC", p.Order())
	assert.Equal(t, 0, p.Offset())
}

func TestParse_AllFacets(t *testing.T) {
	p := paramsFor(t, "search=orphanage&status=pending&campaignId=camp-1&page=3&limit=10&sortBy=amount&sortOrder=asc")

	assert.Equal(t, "orphanage", p.Search)
	assert.Equal(t, "pending", p.Status)
	assert.Equal(t, "camp-1", p.CampaignID)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "amount ASC", p.Order())
	assert.Equal(t, 20, p.Offset())
}

func TestParse_RejectsUnknownSortColumn(t *testing.T) {
	// Arbitrary column names never reach the ORDER BY clause
	p := paramsFor(t, "sortBy=password;drop")

	assert.Equal(t, "created_at", p.SortBy)
}

func TestParse_ClampsLimit(t *testing.T) {
	p := paramsFor(t, "limit=5000")
	assert.Equal(t, DefaultLimit, p.Limit)

	p = paramsFor(t, "limit=-1")
	assert.Equal(t, DefaultLimit, p.Limit)

	p = paramsFor(t, "page=0")
	assert.Equal(t, 1, p.Page)
}

func TestNewMeta(t *testing.T) {
	p := Params{Page: 2, Limit: 10}

	meta := NewMeta(25, p)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
}

func TestNewMeta_ExactPages(t *testing.T) {
	p := Params{Page: 1, Limit: 10}

	meta := NewMeta(30, p)
	assert.Equal(t, 3, meta.TotalPages)

	meta = NewMeta(0, p)
	assert.Equal(t, 0, meta.TotalPages)
}
