package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stellarmotion-erp/internal/application/dto"
	"github.com/jhoicas/stellarmotion-erp/internal/domain"
	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

func errorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.Nop())})
	app.Get("/", func(c *fiber.Ctx) error { return writeError(c, err) })
	return app
}

func TestWriteError_MapeaSentinelas(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: nombre es requerido", domain.ErrInvalidInput), http.StatusBadRequest, "VALIDATION"},
		{domain.ErrPendingInvite, http.StatusBadRequest, "PENDING_INVITATION"},
		{domain.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{domain.ErrSelfConversation, http.StatusBadRequest, "SELF_CONVERSATION"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrNoContact, http.StatusForbidden, "NO_CONTACT"},
		{domain.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{fmt.Errorf("factura: %w", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrNotPayable, http.StatusConflict, "NOT_PAYABLE"},
		{domain.ErrEmailExists, http.StatusConflict, "EMAIL_EXISTS"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{domain.ErrExpired, http.StatusGone, "EXPIRED"},
	}
	for _, tc := range cases {
		resp, err := errorApp(tc.err).Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)

		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		assert.Equal(t, tc.code, body.Code, tc.err.Error())
		assert.NotEmpty(t, body.Message)
	}
}

func TestWriteError_PendingInviteConservaMensaje(t *testing.T) {
	resp, err := errorApp(domain.ErrPendingInvite).Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ya existe una invitación pendiente para este email", body["error"])
}

func TestErrorHandler_ErrorDesconocidoEs500SinDetalle(t *testing.T) {
	resp, err := errorApp(errors.New("pq: relation does not exist")).Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "relation")
}

func TestErrorHandler_RutaInexistente404JSON(t *testing.T) {
	resp, err := errorApp(nil).Test(httptest.NewRequest(http.MethodGet, "/nada", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}
