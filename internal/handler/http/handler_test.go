package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/placerhq/placer-server/internal/logger"
	"github.com/placerhq/placer-server/internal/mock"
	"github.com/placerhq/placer-server/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// handlerMocks collects every collaborator a route handler can touch.
type handlerMocks struct {
	auth   *mock.MockAuthService
	place  *mock.MockPlaceService
	user   *mock.MockUserService
	images *mock.MockImageStore
}

// newTestHandler builds a Handler on mocked services plus the router it
// serves through.
func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*chi.Mux, handlerMocks) {
	t.Helper()

	mocks := handlerMocks{
		auth:   mock.NewMockAuthService(ctrl),
		place:  mock.NewMockPlaceService(ctrl),
		user:   mock.NewMockUserService(ctrl),
		images: mock.NewMockImageStore(ctrl),
	}

	svcs := &service.Services{
		AuthService:  mocks.auth,
		PlaceService: mocks.place,
		UserService:  mocks.user,
	}

	h := NewHandler(svcs, mocks.images, logger.Nop())

	return h.Init(), mocks
}

// multipartBody builds a multipart form with the given fields plus a small
// PNG upload under the "image" part. Returns the body and content type.
func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	part, err := writer.CreateFormFile("image", "picture.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake png bytes"))
	require.NoError(t, err)

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

// decodeBody unmarshals a recorded JSON response into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return decoded
}

// requireMsg asserts the uniform `{msg}` error body.
func requireMsg(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()

	require.Equal(t, status, rec.Code)
	require.Equal(t, msg, decodeBody(t, rec)["msg"])
}

// serve runs a request through the router and records the response.
func serve(router *chi.Mux, method, target string, body io.Reader, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for key, value := range header {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
