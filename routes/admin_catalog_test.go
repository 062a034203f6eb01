package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
	"github.com/herbsera/herbsera-backend/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMedia struct {
	mu      sync.Mutex
	deleted []string
}

func (m *fakeMedia) UploadImage(_ context.Context, file io.Reader, folder string) (services.UploadedImage, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return services.UploadedImage{}, err
	}
	return services.UploadedImage{URL: "https://media.test/" + folder + "/1.jpg", PublicID: folder + "/1"}, nil
}

func (m *fakeMedia) DeleteImage(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, publicID)
	return nil
}

func useMedia(t *testing.T, m services.MediaStore) {
	t.Helper()
	prev := services.Media
	services.Media = m
	t.Cleanup(func() { services.Media = prev })
}

func uploadImage(t *testing.T, srv http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="soap.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("\xff\xd8\xff fake jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products/upload-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestAdminUpdateProductReplacesFields(t *testing.T) {
	srv := newServer(t)
	media := &fakeMedia{}
	useMedia(t, media)
	admin := testutil.Token(t, testutil.CreateUser(t, "admin@example.com", testutil.AsAdmin))

	body := productBody("Neem Soap")
	body["sku"] = "NS-100"
	body["images"] = []map[string]any{
		{"url": "https://media.test/a.jpg", "publicId": "herbsera/a"},
		{"url": "https://media.test/b.jpg", "publicId": "herbsera/b"},
	}
	w, env := testutil.DoJSON(t, srv, http.MethodPost, "/api/admin/products", admin, body)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var soap models.Product
	env.Decode(t, &soap)

	other := productBody("Glow Serum")
	other["category"] = "serum"
	other["sku"] = "GS-200"
	w, _ = testutil.DoJSON(t, srv, http.MethodPost, "/api/admin/products", admin, other)
	require.Equal(t, http.StatusCreated, w.Code)

	path := "/api/admin/products/" + soap.ID.String()
	edit := productBody("Neem Bar")
	edit["sku"] = "NS-100"
	edit["price"] = 299
	edit["images"] = []map[string]any{{"url": "https://media.test/a.jpg", "publicId": "herbsera/a"}}
	w, env = testutil.DoJSON(t, srv, http.MethodPut, path, admin, edit)
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	var updated models.Product
	env.Decode(t, &updated)
	assert.Equal(t, "neem-bar", updated.Slug)
	assert.Equal(t, 299.0, updated.Price)
	require.Len(t, updated.Images, 1)
	assert.Equal(t, []string{"herbsera/b"}, media.deleted)

	// The old slug no longer resolves.
	w, _ = testutil.DoJSON(t, srv, http.MethodGet, "/api/products/slug/neem-soap", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	edit["sku"] = "GS-200"
	w, env = testutil.DoJSON(t, srv, http.MethodPut, path, admin, edit)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SKU already in use", env.Message)

	edit["sku"] = "NS-100"
	edit["category"] = "balm"
	w, _ = testutil.DoJSON(t, srv, http.MethodPut, path, admin, edit)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = testutil.DoJSON(t, srv, http.MethodPut, "/api/admin/products/0192e3c4-0000-7000-8000-000000000001", admin, productBody("Ghost Soap"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminProductSearchIncludesInactive(t *testing.T) {
	srv := newServer(t)
	admin := testutil.Token(t, testutil.CreateUser(t, "admin@example.com", testutil.AsAdmin))
	live := testutil.CreateProduct(t, "Neem Soap")
	retired := testutil.CreateProduct(t, "Neem Soap Classic", testutil.Hidden)
	testutil.CreateProduct(t, "Glow Serum", testutil.Category("serum"))

	w, env := testutil.DoJSON(t, srv, http.MethodGet, "/api/admin/products?search=NEEM", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	env.Decode(t, &products)
	assert.ElementsMatch(t, []string{live.Name, retired.Name}, names(products))
	assert.Equal(t, int64(2), env.Pagination.Total)

	w, env = testutil.DoJSON(t, srv, http.MethodGet, "/api/admin/products?search=neem&status=inactive", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env.Decode(t, &products)
	require.Len(t, products, 1)
	assert.Equal(t, retired.ID, products[0].ID)

	// The storefront never shows the retired product.
	storefront, _ := listProducts(t, srv, "?search=neem")
	assert.Equal(t, []string{live.Name}, names(storefront))
}

func TestAdminReviewListing(t *testing.T) {
	srv := newServer(t)
	admin := testutil.Token(t, testutil.CreateUser(t, "admin@example.com", testutil.AsAdmin))
	asha := testutil.Token(t, testutil.CreateUser(t, "asha@example.com"))
	ravi := testutil.Token(t, testutil.CreateUser(t, "ravi@example.com"))
	soap := testutil.CreateProduct(t, "Neem Soap")
	serum := testutil.CreateProduct(t, "Glow Serum", testutil.Category("serum"))

	for _, r := range []struct {
		token   string
		product *models.Product
		rating  int
	}{{asha, soap, 5}, {ravi, soap, 2}, {asha, serum, 5}} {
		code, env := postReview(t, srv, r.token, r.product, r.rating)
		require.Equal(t, http.StatusCreated, code, env.Message)
	}

	w, env := testutil.DoJSON(t, srv, http.MethodGet, "/api/admin/reviews", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reviews []models.Review
	env.Decode(t, &reviews)
	require.Len(t, reviews, 3)
	assert.Equal(t, int64(3), env.Pagination.Total)
	for _, r := range reviews {
		require.NotNil(t, r.Author)
		assert.NotEmpty(t, r.Author.DisplayName)
	}

	w, env = testutil.DoJSON(t, srv, http.MethodGet, "/api/admin/reviews?productId="+soap.ID.String(), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env.Decode(t, &reviews)
	assert.Len(t, reviews, 2)

	w, env = testutil.DoJSON(t, srv, http.MethodGet, "/api/admin/reviews?rating=5&limit=1", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env.Decode(t, &reviews)
	assert.Len(t, reviews, 1)
	assert.Equal(t, int64(2), env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.Pages)

	w, _ = testutil.DoJSON(t, srv, http.MethodGet, "/api/admin/reviews?productId=nope", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadProductImage(t *testing.T) {
	srv := newServer(t)
	admin := testutil.Token(t, testutil.CreateUser(t, "admin@example.com", testutil.AsAdmin))

	useMedia(t, nil)
	w := uploadImage(t, srv, admin)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	useMedia(t, &fakeMedia{})
	w = uploadImage(t, srv, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env struct {
		Data services.UploadedImage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "herbsera/products/1", env.Data.PublicID)
}
