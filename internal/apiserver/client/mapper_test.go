package client

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"entity-admin/internal/apiserver/entity"
	"entity-admin/internal/shared/model"
	"entity-admin/internal/shared/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	id   string
	body string
}

func (r testRequest) Context() context.Context { return context.Background() }

func (r testRequest) PathParam(name string) string {
	if name == "id" {
		return r.id
	}
	return ""
}

func (r testRequest) Body() io.Reader { return strings.NewReader(r.body) }

func TestMapRequestToEntity(t *testing.T) {
	got, err := NewMapper().MapRequestToEntity(testRequest{
		body: `{"_id":42,"id":"web","secret":"s3cret","redirectUrl":"https://example.com/cb"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, model.Client{
		ID:          42,
		ClientID:    "web",
		Secret:      "s3cret",
		RedirectURL: "https://example.com/cb",
	}, got)
}

func TestMapRequestToEntity_LargeID(t *testing.T) {
	got, err := NewMapper().MapRequestToEntity(testRequest{body: `{"_id":9007199254740993,"id":"big"}`})
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), got.ID)
}

func TestMapRequestToEntity_IntegralFloatID(t *testing.T) {
	m := NewMapper()

	for _, body := range []string{`{"_id":7.0,"id":"web"}`, `{"_id":7e0,"id":"web"}`} {
		got, err := m.MapRequestToEntity(testRequest{body: body})
		require.NoError(t, err, body)
		assert.Equal(t, int64(7), got.ID)
	}

	got, err := m.MapRequestToEntity(testRequest{id: "7", body: `{"_id":7.0,"id":"web"}`})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
}

func TestMapRequestToEntity_TrailingWhitespace(t *testing.T) {
	got, err := NewMapper().MapRequestToEntity(testRequest{body: "{\"_id\":1,\"id\":\"web\"}\n  "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestMapRequestToEntity_PathID(t *testing.T) {
	m := NewMapper()

	got, err := m.MapRequestToEntity(testRequest{id: "7", body: `{"id":"web"}`})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)

	got, err = m.MapRequestToEntity(testRequest{id: "7", body: `{"_id":7,"id":"web"}`})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
}

func TestMapRequestToEntity_Errors(t *testing.T) {
	tests := []struct {
		name  string
		req   testRequest
		code  string
		field string
	}{
		{"malformed json", testRequest{body: `{"_id":`}, entity.CodeMalformedBody, ""},
		{"empty body", testRequest{body: ``}, entity.CodeMalformedBody, ""},
		{"not an object", testRequest{body: `[1,2]`}, entity.CodeMalformedBody, ""},
		{"trailing garbage", testRequest{body: `{"_id":1,"id":"web"} trailing`}, entity.CodeMalformedBody, ""},
		{"second object", testRequest{body: `{"_id":1,"id":"web"}{"_id":2}`}, entity.CodeMalformedBody, ""},
		{"missing _id", testRequest{body: `{"id":"web"}`}, entity.CodeMissingField, "_id"},
		{"missing id", testRequest{body: `{"_id":1}`}, entity.CodeMissingField, "id"},
		{"string _id", testRequest{body: `{"_id":"1","id":"web"}`}, entity.CodeTypeMismatch, "_id"},
		{"fractional _id", testRequest{body: `{"_id":1.5,"id":"web"}`}, entity.CodeTypeMismatch, "_id"},
		{"numeric secret", testRequest{body: `{"_id":1,"id":"web","secret":5}`}, entity.CodeTypeMismatch, "secret"},
		{"null redirectUrl", testRequest{body: `{"_id":1,"id":"web","redirectUrl":null}`}, entity.CodeTypeMismatch, "redirectUrl"},
		{"empty id", testRequest{body: `{"_id":1,"id":""}`}, entity.CodeInvalidValue, "id"},
		{"_id out of range", testRequest{body: `{"_id":1e30,"id":"web"}`}, entity.CodeInvalidValue, "_id"},
		{"bad path id", testRequest{id: "x", body: `{"_id":1,"id":"web"}`}, entity.CodeInvalidID, "id"},
		{"id mismatch", testRequest{id: "2", body: `{"_id":1,"id":"web"}`}, entity.CodeIDMismatch, "_id"},
		{"id mismatch with float _id", testRequest{id: "7", body: `{"_id":8.0,"id":"web"}`}, entity.CodeIDMismatch, "_id"},
		{"inexact float _id", testRequest{body: `{"_id":9007199254740993.0,"id":"web"}`}, entity.CodeInvalidValue, "_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMapper().MapRequestToEntity(tt.req)
			var mapperErr *entity.MapperError
			require.ErrorAs(t, err, &mapperErr)
			assert.Equal(t, tt.code, mapperErr.Code)
			assert.Equal(t, tt.field, mapperErr.Field)
		})
	}
}

func TestMapRequestToEntityID(t *testing.T) {
	m := NewMapper()

	id, err := m.MapRequestToEntityID(testRequest{id: "123"})
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)

	for _, raw := range []string{"", "abc", "1.5", "99999999999999999999"} {
		_, err := m.MapRequestToEntityID(testRequest{id: raw})
		var mapperErr *entity.MapperError
		require.ErrorAs(t, err, &mapperErr, raw)
		assert.Equal(t, entity.CodeInvalidID, mapperErr.Code)
	}
}

func TestMapEntityToResponseBody(t *testing.T) {
	body := NewMapper().MapEntityToResponseBody(model.Client{ID: 1, ClientID: "web", Secret: "s", RedirectURL: "r"})
	data, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":1,"id":"web","secret":"s","redirectUrl":"r"}`, string(data))
}

func TestMapEntityErrorToResponseBody(t *testing.T) {
	m := NewMapper()

	data, err := json.Marshal(m.MapEntityErrorToResponseBody(&storage.EntityError{Kind: storage.KindAlreadyExists, ID: 1}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"entity already exists","code":"already_exists","_id":1}`, string(data))

	data, err = json.Marshal(m.MapEntityErrorToResponseBody(&storage.EntityError{Kind: storage.KindNotFound, ID: 2}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"entity not found","code":"not_found","_id":2}`, string(data))
}
