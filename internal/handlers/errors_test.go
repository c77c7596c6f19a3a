package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faiadgitm-oss/trpical-try/internal/service"
)

func TestHTTPErrorHandler_RendersJSON(t *testing.T) {
	e := echo.New()

	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"http error", echo.NewHTTPError(http.StatusBadRequest, "No items"), 400, `{"error":"No items"}`},
		{"route miss", echo.ErrNotFound, 404, `{"error":"Not Found"}`},
		{"plain error", errors.New("boom"), 500, `{"error":"Internal Server Error"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			HTTPErrorHandler(tc.err, c)
			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestServiceError_MapsSentinels(t *testing.T) {
	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	var he *echo.HTTPError
	require.ErrorAs(t, serviceError(l, "x", fmt.Errorf("%w: No items", service.ErrValidation)), &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "No items", he.Message)

	require.ErrorAs(t, serviceError(l, "x", fmt.Errorf("%w: order 3", service.ErrNotFound)), &he)
	assert.Equal(t, http.StatusNotFound, he.Code)

	require.ErrorAs(t, serviceError(l, "x", errors.New("disk full")), &he)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
}

func TestPathID(t *testing.T) {
	e := echo.New()
	for raw, want := range map[string]uint{"7": 7, "0": 0, "-1": 0, "x": 0} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(raw)
		id, err := pathID(c)
		if want == 0 {
			assert.Error(t, err, raw)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}
