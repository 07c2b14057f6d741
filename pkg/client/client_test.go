package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"tosika/pkg/jwt"
	"tosika/pkg/listquery"

	golangjwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDonation struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

func freshToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewService("test-secret").GenerateToken("user-1", "admin")
	require.NoError(t, err)
	return token
}

func expiredToken(t *testing.T) string {
	t.Helper()
	claims := golangjwt.MapClaims{
		"user_id": "user-1",
		"role":    "admin",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token, err := golangjwt.NewWithClaims(golangjwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func authedSession(t *testing.T) *Session {
	t.Helper()
	session := NewSession()
	require.NoError(t, session.Set(freshToken(t), "user-1", "admin"))
	return session
}

func TestSession_ExpiredFailsLocally(t *testing.T) {
	session := NewSession()
	require.NoError(t, session.Set(expiredToken(t), "user-1", "admin"))

	_, err := session.Token()
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, session.Active())
}

func TestSession_EmptyFails(t *testing.T) {
	session := NewSession()

	_, err := session.Token()
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestAuthedCall_ExpiredSessionNeverReachesNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	session := NewSession()
	require.NoError(t, session.Set(expiredToken(t), "user-1", "admin"))
	c := New(server.URL, session)

	err := c.GetAuthed(context.Background(), "/api/v1/admin/donations", nil, nil)

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Zero(t, requests)
}

func TestAuthedCall_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	session := authedSession(t)
	c := New(server.URL, session)

	require.NoError(t, c.GetAuthed(context.Background(), "/health", nil, nil))
	assert.Contains(t, gotAuth, "Bearer ")
}

func TestPublicCall_NeverAttachesToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(testDonation{ID: "don-1", Status: "pending"})
	}))
	defer server.Close()

	// Even with an active session, public submission goes out bare
	session := authedSession(t)
	c := New(server.URL, session)

	var donation testDonation
	err := c.Post(context.Background(), "/api/v1/donations", map[string]interface{}{"amount": 100}, &donation)

	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "don-1", donation.ID)
}

func TestUnauthorizedReplyClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid token"})
	}))
	defer server.Close()

	session := authedSession(t)
	c := New(server.URL, session)

	err := c.GetAuthed(context.Background(), "/api/v1/me/withdrawals", nil, nil)

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, session.Active())
}

func TestErrorReplySurfacedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "record is no longer pending"})
	}))
	defer server.Close()

	c := New(server.URL, authedSession(t))

	err := c.PatchAuthed(context.Background(), "/api/v1/admin/donations/don-1/status", map[string]string{"status": "completed"}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "record is no longer pending", apiErr.Message)
}

func TestDecodeList_Envelope(t *testing.T) {
	body := []byte(`{"data":[{"id":"don-1","amount":100,"status":"pending"}],"meta":{"total":41,"totalPages":3,"page":2,"limit":20}}`)

	items, meta, err := DecodeList[testDonation](body)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "don-1", items[0].ID)
	assert.Equal(t, int64(41), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)
}

func TestDecodeList_BareArray(t *testing.T) {
	body := []byte(`[{"id":"don-1","amount":100,"status":"pending"},{"id":"don-2","amount":200,"status":"completed"}]`)

	items, meta, err := DecodeList[testDonation](body)

	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), meta.Total)
	assert.Equal(t, 1, meta.Page)
}

func TestDecodeList_EmptyBareArray(t *testing.T) {
	items, meta, err := DecodeList[testDonation]([]byte(`[]`))

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, meta.Total)
	assert.Equal(t, listquery.DefaultLimit, meta.Limit)
}

func TestDecodeList_EmptyEnvelope(t *testing.T) {
	items, meta, err := DecodeList[testDonation]([]byte(`{"data":[],"meta":{"total":0,"totalPages":0,"page":1,"limit":20}}`))

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, meta.Total)
}

func TestListController_FilterResetsPage(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		page := r.URL.Query().Get("page")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []testDonation{},
			"meta": map[string]interface{}{"total": 0, "totalPages": 0, "page": page1(page), "limit": 20},
		})
	}))
	defer server.Close()

	c := New(server.URL, authedSession(t))
	lc := NewListController[testDonation](c, "/api/v1/admin/donations", true)

	lc.SetPage(4)
	lc.SetStatus("pending")

	require.NoError(t, lc.Refresh(context.Background()))
	assert.Equal(t, []string{"pending"}, gotQuery["status"])
	// filter change pulled the controller back to page 1
	assert.Equal(t, []string{"1"}, gotQuery["page"])
}

func TestListController_SetPagePreservesFilters(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []testDonation{{ID: "don-9"}},
			"meta": map[string]interface{}{"total": 55, "totalPages": 3, "page": 3, "limit": 20},
		})
	}))
	defer server.Close()

	c := New(server.URL, authedSession(t))
	lc := NewListController[testDonation](c, "/api/v1/admin/donations", true)

	lc.SetStatus("pending")
	lc.SetSearch("orphanage")
	lc.SetPage(3)

	require.NoError(t, lc.Refresh(context.Background()))
	assert.Equal(t, []string{"pending"}, gotQuery["status"])
	assert.Equal(t, []string{"orphanage"}, gotQuery["search"])
	assert.Equal(t, []string{"3"}, gotQuery["page"])

	// server meta is authoritative after refresh
	assert.Equal(t, int64(55), lc.Meta().Total)
	assert.Equal(t, 3, lc.Page())
	assert.Len(t, lc.Items(), 1)
}

func TestListController_TrustsServerMetaOverLocalCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// one page of 20 out of a much larger set
		items := make([]testDonation, 20)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": items,
			"meta": map[string]interface{}{"total": 412, "totalPages": 21, "page": 1, "limit": 20},
		})
	}))
	defer server.Close()

	c := New(server.URL, authedSession(t))
	lc := NewListController[testDonation](c, "/api/v1/admin/donations", true)

	require.NoError(t, lc.Refresh(context.Background()))
	assert.Len(t, lc.Items(), 20)
	assert.Equal(t, int64(412), lc.Meta().Total)
	assert.Equal(t, 21, lc.Meta().TotalPages)
}

func page1(page string) int {
	n, err := strconv.Atoi(page)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
