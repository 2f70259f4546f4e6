package handlers_test

import (
	"Scribz/internal/model"
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createNote(t *testing.T, h http.Handler, token string, body any) model.Note {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/api/notes", token, body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[model.Note](t, rr)
}

func listNotes(t *testing.T, h http.Handler, token, query string) []model.Note {
	t.Helper()
	rr := doJSON(t, h, http.MethodGet, "/api/notes"+query, token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[[]model.Note](t, rr)
}

func TestNotes_RequireAuth(t *testing.T) {
	router := newTestRouter(t)
	id := uuid.NewString()

	for _, c := range []struct{ method, path string }{
		{http.MethodGet, "/api/notes"},
		{http.MethodPost, "/api/notes"},
		{http.MethodGet, "/api/notes/" + id},
		{http.MethodPut, "/api/notes/" + id},
		{http.MethodPatch, "/api/notes/" + id + "/favorite"},
		{http.MethodPatch, "/api/notes/" + id + "/trash"},
		{http.MethodDelete, "/api/notes/" + id},
	} {
		rr := doJSON(t, router, c.method, c.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", c.method, c.path)
	}
}

func TestNotes_CreateDefaults(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "a@example.com")

	// пустое тело — все значения по умолчанию
	n := createNote(t, router, token, nil)
	assert.Equal(t, "Untitled", n.Title)
	assert.Equal(t, "", n.Content)
	assert.Equal(t, "#ffffff", n.Color)
	assert.False(t, n.IsFavorite)
	assert.False(t, n.IsTrashed)
	assert.NotEmpty(t, n.UserID)
	assert.False(t, n.CreatedAt.IsZero())

	// флаги во входных данных игнорируются
	n = createNote(t, router, token, map[string]any{
		"title": "  Groceries  ", "content": "<p>milk</p>", "color": "#fde68a",
		"isFavorite": true, "isTrashed": true,
	})
	assert.Equal(t, "Groceries", n.Title)
	assert.Equal(t, "<p>milk</p>", n.Content)
	assert.Equal(t, "#fde68a", n.Color)
	assert.False(t, n.IsFavorite)
	assert.False(t, n.IsTrashed)

	rr := doJSON(t, router, http.MethodPost, "/api/notes", token, `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNotes_LifecycleScenario(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "owner@example.com")

	a := createNote(t, router, token, map[string]string{"title": "Alpha"})
	b := createNote(t, router, token, map[string]string{"title": "Beta"})

	// новые сверху
	all := listNotes(t, router, token, "")
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID)

	// избранное
	rr := doJSON(t, router, http.MethodPatch, "/api/notes/"+a.ID+"/favorite", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[model.Note](t, rr).IsFavorite)

	favs := listNotes(t, router, token, "?filter=favorites")
	require.Len(t, favs, 1)
	assert.Equal(t, a.ID, favs[0].ID)

	// последняя изменённая — первая
	all = listNotes(t, router, token, "")
	assert.Equal(t, a.ID, all[0].ID)

	// в корзину: пропадает из all и favorites
	rr = doJSON(t, router, http.MethodPatch, "/api/notes/"+a.ID+"/trash", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	trashed := decode[model.Note](t, rr)
	assert.True(t, trashed.IsTrashed)
	assert.True(t, trashed.IsFavorite)

	assert.Len(t, listNotes(t, router, token, ""), 1)
	assert.Empty(t, listNotes(t, router, token, "?filter=favorites"))
	trash := listNotes(t, router, token, "?filter=trash")
	require.Len(t, trash, 1)
	assert.Equal(t, a.ID, trash[0].ID)

	// восстановление тем же переключателем
	rr = doJSON(t, router, http.MethodPatch, "/api/notes/"+a.ID+"/trash", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, decode[model.Note](t, rr).IsTrashed)
	assert.Len(t, listNotes(t, router, token, "?filter=favorites"), 1)

	// поиск по заголовку без учёта регистра
	found := listNotes(t, router, token, "?search=bET")
	require.Len(t, found, 1)
	assert.Equal(t, b.ID, found[0].ID)

	// неизвестный фильтр — как all
	assert.Len(t, listNotes(t, router, token, "?filter=archived"), 2)

	// окончательное удаление из активного состояния
	rr = doJSON(t, router, http.MethodDelete, "/api/notes/"+b.ID, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "note deleted", decode[messageBody](t, rr).Message)

	rr = doJSON(t, router, http.MethodGet, "/api/notes/"+b.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = doJSON(t, router, http.MethodDelete, "/api/notes/"+b.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNotes_UpdatePartial(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "u@example.com")
	n := createNote(t, router, token, map[string]string{"title": "Plan", "content": "body", "color": "#000000"})

	rr := doJSON(t, router, http.MethodPut, "/api/notes/"+n.ID, token, map[string]any{
		"content": "new body", "isFavorite": true, "isTrashed": true,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[model.Note](t, rr)
	assert.Equal(t, "Plan", got.Title)
	assert.Equal(t, "new body", got.Content)
	assert.Equal(t, "#000000", got.Color)
	assert.True(t, got.IsFavorite)
	// isTrashed не меняется через PUT
	assert.False(t, got.IsTrashed)

	// пустой заголовок — "Untitled"
	rr = doJSON(t, router, http.MethodPut, "/api/notes/"+n.ID, token, map[string]string{"title": " "})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Untitled", decode[model.Note](t, rr).Title)

	rr = doJSON(t, router, http.MethodPut, "/api/notes/"+n.ID, token, map[string]string{"color": "a-very-long-color-value-that-overflows"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNotes_OtherUsersNotesAreNotFound(t *testing.T) {
	router := newTestRouter(t)
	alice := signup(t, router, "alice@example.com")
	bob := signup(t, router, "bob@example.com")

	n := createNote(t, router, alice, map[string]string{"title": "private"})

	for _, c := range []struct{ method, path string }{
		{http.MethodGet, "/api/notes/" + n.ID},
		{http.MethodPut, "/api/notes/" + n.ID},
		{http.MethodPatch, "/api/notes/" + n.ID + "/favorite"},
		{http.MethodPatch, "/api/notes/" + n.ID + "/trash"},
		{http.MethodDelete, "/api/notes/" + n.ID},
	} {
		rr := doJSON(t, router, c.method, c.path, bob, map[string]string{"title": "hijacked"})
		assert.Equal(t, http.StatusNotFound, rr.Code, "%s %s", c.method, c.path)
	}
	assert.Empty(t, listNotes(t, router, bob, ""))

	// заметка осталась нетронутой
	rr := doJSON(t, router, http.MethodGet, "/api/notes/"+n.ID, alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	got := decode[model.Note](t, rr)
	assert.Equal(t, "private", got.Title)
	assert.False(t, got.IsFavorite)
	assert.False(t, got.IsTrashed)
}

func TestNotes_MalformedIDIsNotFound(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "m@example.com")

	rr := doJSON(t, router, http.MethodGet, "/api/notes/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "note not found", decode[messageBody](t, rr).Message)
}

func TestNotes_GzipResponse(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "z@example.com")
	createNote(t, router, token, map[string]string{"title": "zipped"})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "zipped")
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "metrics@example.com")

	rr := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rr)["status"])

	// запрос к API попадает в метрики по шаблону маршрута
	listNotes(t, router, token, "")

	rr = doJSON(t, router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "scribz_http_requests_total")
	assert.Contains(t, rr.Body.String(), `route="/api/notes`)
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	router := newTestRouter(t)
	rr := doJSON(t, router, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "route not found", decode[messageBody](t, rr).Message)
}
