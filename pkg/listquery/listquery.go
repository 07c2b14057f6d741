package listquery

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params carries the list facets every collection endpoint accepts:
// free-text search, status filter, campaign filter, sort and pagination.
type Params struct {
	Search     string
	Status     string
	CampaignID string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

// Parse reads the facets from the query string. sortColumns whitelists the
// sortable fields, mapping the exposed name to the database column.
func Parse(c *gin.Context, sortColumns map[string]string, defaultSort string) Params {
	p := Params{
		Search:     strings.TrimSpace(c.Query("search")),
		Status:     c.Query("status"),
		CampaignID: c.Query("campaignId"),
		Page:       1,
		Limit:      DefaultLimit,
		SortBy:     defaultSort,
		SortOrder:  "desc",
	}

	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= MaxLimit {
			p.Limit = limit
		}
	}

	if sortBy := c.Query("sortBy"); sortBy != "" {
		if _, ok := sortColumns[sortBy]; ok {
			p.SortBy = sortBy
		}
	}

	if order := strings.ToLower(c.Query("sortOrder")); order == "asc" {
		p.SortOrder = "asc"
	}

	// resolve the exposed sort name to its column
	if col, ok := sortColumns[p.SortBy]; ok {
		p.SortBy = col
	}

	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Params) Order() string {
	order := "DESC"
	if p.SortOrder == "asc" {
		order = "ASC"
	}
	return p.SortBy + " " + order
}

// Scope applies sort and pagination; filtering stays with the repository
// since it is entity specific.
func (p Params) Scope(db *gorm.DB) *gorm.DB {
	return db.Order(p.Order()).Limit(p.Limit).Offset(p.Offset())
}

// Meta is the pagination block of a list envelope. Clients must trust it
// over any local count.
type Meta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
}

func NewMeta(total int64, p Params) Meta {
	totalPages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		totalPages++
	}
	return Meta{
		Total:      total,
		TotalPages: totalPages,
		Page:       p.Page,
		Limit:      p.Limit,
	}
}
