//go:build !integration

package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"myStarCompanion/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRelicService struct {
	gotPage domain.Page
	gotSlot string
	created *domain.Relic
}

func (f *fakeRelicService) GetAllRelics(ctx context.Context, page domain.Page, slot string) (domain.PageResult[domain.Relic], error) {
	f.gotPage, f.gotSlot = page, slot
	if slot == "Wrist" {
		return domain.PageResult[domain.Relic]{}, errors.New("invalid relic slot")
	}
	return domain.PageResult[domain.Relic]{
		Items: []domain.Relic{{ID: 1, Name: "Musketeer's Wild Wheat Felt Hat", Slot: "Head"}},
		Page:  page.Page,
		Limit: page.Limit,
		Total: 1,
	}, nil
}

func (f *fakeRelicService) GetRelicByID(ctx context.Context, id uint64) (domain.Relic, error) {
	if id != 1 {
		return domain.Relic{}, errors.New("relic not found")
	}
	return domain.Relic{ID: 1, Name: "Musketeer's Wild Wheat Felt Hat"}, nil
}

func (f *fakeRelicService) CreateRelic(ctx context.Context, relic *domain.Relic) (*domain.Relic, error) {
	f.created = relic
	relic.ID = 2
	return relic, nil
}

func (f *fakeRelicService) UpdateRelic(ctx context.Context, relic *domain.Relic) (*domain.Relic, error) {
	return relic, nil
}

func (f *fakeRelicService) DeleteRelic(ctx context.Context, id uint64) error {
	return nil
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRelicHandler_GetAllRelicsPagination(t *testing.T) {
	svc := &fakeRelicService{}
	h := NewRelicHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/v1/relics?page=2&limit=500&slot=Head", "")
	require.NoError(t, h.GetAllRelics(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Page{Page: 2, Limit: domain.MaxPageLimit}, svc.gotPage)
	assert.Equal(t, "Head", svc.gotSlot)
	assert.Contains(t, rec.Body.String(), `"total":1`)
	assert.Contains(t, rec.Body.String(), `"limit":100`)
}

func TestRelicHandler_GetAllRelicsDefaults(t *testing.T) {
	svc := &fakeRelicService{}
	h := NewRelicHandler(svc)

	c, _ := newContext(http.MethodGet, "/api/v1/relics", "")
	require.NoError(t, h.GetAllRelics(c))

	assert.Equal(t, domain.Page{Page: 1, Limit: domain.DefaultPageLimit}, svc.gotPage)
}

func TestRelicHandler_GetAllRelicsBadInput(t *testing.T) {
	h := NewRelicHandler(&fakeRelicService{})

	c, rec := newContext(http.MethodGet, "/api/v1/relics?page=abc", "")
	require.NoError(t, h.GetAllRelics(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(http.MethodGet, "/api/v1/relics?slot=Wrist", "")
	require.NoError(t, h.GetAllRelics(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRelicHandler_GetAllRelicsPageTooLarge(t *testing.T) {
	svc := &fakeRelicService{}
	h := NewRelicHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/v1/relics?page=9223372036854775807&limit=100", "")
	require.NoError(t, h.GetAllRelics(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "page must be at most")
	assert.Equal(t, domain.Page{}, svc.gotPage)
}

func TestRelicHandler_GetRelicByID(t *testing.T) {
	h := NewRelicHandler(&fakeRelicService{})

	c, rec := newContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetRelicByID(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.GetRelicByID(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = newContext(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("x")
	require.NoError(t, h.GetRelicByID(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRelicHandler_CreateRelic(t *testing.T) {
	svc := &fakeRelicService{}
	h := NewRelicHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/v1/relics",
		`{"name":"Passerby's Stygian Hiking Boots","set_name":"Passerby of Wandering Cloud","rarity":5}`)
	require.NoError(t, h.CreateRelic(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Passerby of Wandering Cloud", svc.created.SetName)
	assert.Equal(t, 5, svc.created.Rarity)

	c, rec = newContext(http.MethodPost, "/api/v1/relics", `{"rarity":5}`)
	require.NoError(t, h.CreateRelic(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
