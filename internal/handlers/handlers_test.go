package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "validation",
			err:    models.NewValidationError(models.FieldError{Msg: "Name is required", Param: "name", Location: "body"}),
			status: http.StatusBadRequest,
			body:   `{"errors":[{"msg":"Name is required","param":"name","location":"body"}]}`,
		},
		{
			name:   "invalid credentials",
			err:    models.NewInvalidCredentialsError(),
			status: http.StatusBadRequest,
			body:   `{"errors":[{"msg":"Invalid Credentials"}]}`,
		},
		{
			name:   "conflict",
			err:    models.NewConflictError("Already Liked"),
			status: http.StatusBadRequest,
			body:   `{"errors":[{"msg":"Already Liked"}]}`,
		},
		{
			name:   "unauthorized",
			err:    models.NewUnauthorizedError("Token is Not Valid"),
			status: http.StatusUnauthorized,
			body:   `{"msg":"Token is Not Valid"}`,
		},
		{
			name:   "forbidden",
			err:    models.NewForbiddenError("User not authorized"),
			status: http.StatusForbidden,
			body:   `{"msg":"User not authorized"}`,
		},
		{
			name:   "not found",
			err:    models.NewNotFoundError("Post not found"),
			status: http.StatusNotFound,
			body:   `{"msg":"Post not found"}`,
		},
		{
			name:   "upstream",
			err:    models.NewUpstreamError("No Github Profile Found", errors.New("github returned 404")),
			status: http.StatusNotFound,
			body:   `{"msg":"No Github Profile Found"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestRespondError_HidesInternalDetails(t *testing.T) {
	for _, err := range []error{
		errors.New("server selection error: context deadline exceeded"),
		models.NewInternalError(errors.New("E11000 duplicate key")),
	} {
		rec := httptest.NewRecorder()
		respondError(rec, httptest.NewRequest(http.MethodGet, "/", nil), err)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Server Error", rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	var req TextRequest

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":`))
	assert.False(t, decodeJSON(rec, r, &req))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":[{"msg":"Invalid request body"}]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	assert.True(t, decodeJSON(rec, r, &req))
	assert.Empty(t, req.Text)
}

func fieldParams(t *testing.T, err error) []string {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, models.KindValidation, appErr.Kind)
	params := make([]string, 0, len(appErr.Fields))
	for _, f := range appErr.Fields {
		params = append(params, f.Param)
	}
	return params
}

func TestRegisterRequest_ReportsEveryField(t *testing.T) {
	err := RegisterRequest{Email: "nope", Password: "123", Phone: "12"}.Validate()
	assert.Equal(t, []string{"name", "email", "password", "phone"}, fieldParams(t, err))

	assert.NoError(t, RegisterRequest{Name: "Alice", Email: "a@x.com", Password: "secret1", Phone: "5551234567"}.Validate())
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.Equal(t, []string{"email", "password"}, fieldParams(t, LoginRequest{}.Validate()))
	assert.NoError(t, LoginRequest{Email: "a@x.com", Password: "x"}.Validate())
}

func TestProfileRequest(t *testing.T) {
	var req ProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Developer","skills":"Go, SQL ,, Docker","company":"  ","twitter":"https://twitter.com/a"}`), &req))
	require.NoError(t, req.Validate())

	u := req.Update()
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, u.Skills)
	assert.Nil(t, u.Company)
	require.NotNil(t, u.Social.Twitter)
	assert.Equal(t, "https://twitter.com/a", *u.Social.Twitter)
	assert.Nil(t, u.Social.YouTube)

	var list ProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Dev","skills":["Go"," Rust "]}`), &list))
	assert.Equal(t, []string{"Go", "Rust"}, list.Update().Skills)

	assert.Equal(t, []string{"status", "skills"}, fieldParams(t, ProfileRequest{}.Validate()))

	var blank ProfileRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Dev","skills":" , "}`), &blank))
	assert.Equal(t, []string{"skills"}, fieldParams(t, blank.Validate()))
}

func TestExperienceRequest(t *testing.T) {
	_, err := ExperienceRequest{}.Experience()
	assert.Equal(t, []string{"title", "company", "from"}, fieldParams(t, err))

	exp, err := ExperienceRequest{Title: "Dev", Company: "Acme", From: "2019-06-01", To: "2021-01-31T00:00:00Z"}.Experience()
	require.NoError(t, err)
	assert.Equal(t, 2019, exp.From.Year())
	require.NotNil(t, exp.To)
	assert.Equal(t, 2021, exp.To.Year())

	_, err = ExperienceRequest{Title: "Dev", Company: "Acme", From: "2019-06-01", To: "soon"}.Experience()
	assert.Equal(t, []string{"to"}, fieldParams(t, err))
}

func TestEducationRequest(t *testing.T) {
	_, err := EducationRequest{}.Education()
	assert.Equal(t, []string{"school", "degree", "fieldofstudy", "from"}, fieldParams(t, err))

	edu, err := EducationRequest{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01", Current: true}.Education()
	require.NoError(t, err)
	assert.True(t, edu.Current)
	assert.Nil(t, edu.To)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "OK", rec.Body.String())

	rec = httptest.NewRecorder()
	Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "API Running", rec.Body.String())
}
