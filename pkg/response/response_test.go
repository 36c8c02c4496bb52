package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront/pkg/response"
)

func TestData(t *testing.T) {
	rr := httptest.NewRecorder()

	require.NoError(t, response.Data(rr, http.StatusCreated, map[string]int{"id": 3}))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"id":3}}`, rr.Body.String())
}

func TestMessage(t *testing.T) {
	rr := httptest.NewRecorder()

	require.NoError(t, response.Message(rr, http.StatusOK, "Logged out"))

	assert.JSONEq(t, `{"success":true,"message":"Logged out"}`, rr.Body.String())
}

func TestError(t *testing.T) {
	rr := httptest.NewRecorder()

	response.Error(rr, http.StatusNotFound, "Product not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"Product not found"}`, rr.Body.String())
}

func TestJSONMarshalFailure(t *testing.T) {
	rr := httptest.NewRecorder()

	err := response.Data(rr, http.StatusOK, make(chan int))

	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rr.Body.String())
}
