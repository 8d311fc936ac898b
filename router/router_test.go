package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"artifactvault/pkg/token"
	"artifactvault/socket"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testID = "7be7b3a5-1681-4a51-a6d4-90cbd2ae8a22"

func setup(t *testing.T) (http.Handler, sqlmock.Sqlmock) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	hub := socket.NewHub()
	go hub.Run()

	return Setup(db, hub), mock
}

func sessionCookie(t *testing.T, email string) *http.Cookie {
	signed, err := token.Issue(token.IdentityClaim{Email: email})
	require.NoError(t, err)
	return &http.Cookie{Name: "token", Value: signed}
}

func TestLiveness(t *testing.T) {
	handler, _ := setup(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "server is running", rec.Body.String())
}

func TestAllArtifacts(t *testing.T) {
	handler, mock := setup(t)

	mock.ExpectQuery("SELECT id, doc, like_count FROM artifacts").
		WillReturnRows(sqlmock.NewRows([]string{"id", "doc", "like_count"}).
			AddRow(testID, []byte(`{"title":"X","adderEmail":"a@x.com"}`), int64(1)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/all-artifacts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var artifacts []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &artifacts))
	require.Len(t, artifacts, 1)
	assert.Equal(t, testID, artifacts[0]["_id"])
	assert.Equal(t, "X", artifacts[0]["title"])
	assert.Equal(t, float64(1), artifacts[0]["likeCount"])
}

func TestGetArtifactMalformedIDIsNotFound(t *testing.T) {
	handler, mock := setup(t)

	// No store expectation: a non-UUID id must never reach the database.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/all-artifacts/not-a-uuid", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddArtifact(t *testing.T) {
	handler, mock := setup(t)

	body := `{"title":"X","adderEmail":"a@x.com"}`
	mock.ExpectQuery("INSERT INTO artifacts").
		WithArgs([]byte(body)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testID))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add-artifacts", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success    bool   `json:"success"`
		InsertedID string `json:"insertedId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, testID, resp.InsertedID)
}

func TestAddArtifactRejectsNonObjectBody(t *testing.T) {
	handler, mock := setup(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add-artifacts", strings.NewReader(`[1,2,3]`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMyArtifactsRequiresCookie(t *testing.T) {
	handler, mock := setup(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/my-artifacts", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// The request must be rejected before any store access.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMyArtifactsEmptyIsSuccess(t *testing.T) {
	handler, mock := setup(t)

	mock.ExpectQuery("SELECT id, doc, like_count FROM artifacts WHERE doc").
		WithArgs("b@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "doc", "like_count"}))

	req := httptest.NewRequest(http.MethodGet, "/my-artifacts", nil)
	req.AddCookie(sessionCookie(t, "b@x.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"artifacts":[]}`, rec.Body.String())
}

func TestUpdateArtifactForbiddenForNonOwner(t *testing.T) {
	handler, mock := setup(t)

	patch := `{"title":"Y"}`
	mock.ExpectQuery("UPDATE artifacts SET doc").
		WithArgs([]byte(patch), testID, "intruder@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "doc", "like_count"}))

	req := httptest.NewRequest(http.MethodPatch, "/update-artifact/"+testID, strings.NewReader(patch))
	req.AddCookie(sessionCookie(t, "intruder@x.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteArtifactByOwner(t *testing.T) {
	handler, mock := setup(t)

	mock.ExpectExec("DELETE FROM artifacts WHERE id").
		WithArgs(testID, "a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodDelete, "/delete-artifact/"+testID, nil)
	req.AddCookie(sessionCookie(t, "a@x.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestLikeToggle(t *testing.T) {
	handler, mock := setup(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO artifact_likes").
		WithArgs(testID, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("UPDATE artifacts SET like_count").
		WithArgs(int64(1), testID).
		WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(int64(1)))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodPatch, "/artifacts/"+testID+"/like", strings.NewReader(`{"userId":"u1"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"liked":true}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeStatusRequiresUserID(t *testing.T) {
	handler, _ := setup(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/artifacts/"+testID+"/like-status", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJwtIssuesCookieAndDebugCheckReadsIt(t *testing.T) {
	handler, _ := setup(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"a@x.com","name":"Ada"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login must set the token cookie")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int(token.TTL.Seconds()), cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/debug-check-token", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")
}

func TestJwtRequiresEmail(t *testing.T) {
	handler, _ := setup(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"name":"anonymous"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	handler, _ := setup(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
