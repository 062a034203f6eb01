package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/herbsera/herbsera-backend/models"
)

// AdminService covers /admin. The signed-in user must have the admin role.
type AdminService struct{ c *Client }

// AdminQuery filters admin listings. Each endpoint reads the fields it knows.
type AdminQuery struct {
	ListOptions
	Search       string
	Status       string
	Category     string
	Role         string
	ResourceType string
	ProductID    string
	Rating       int
}

func (q AdminQuery) values() url.Values {
	v := q.ListOptions.values()
	setIf(v, "search", q.Search)
	setIf(v, "status", q.Status)
	setIf(v, "category", q.Category)
	setIf(v, "role", q.Role)
	setIf(v, "resourceType", q.ResourceType)
	setIf(v, "productId", q.ProductID)
	if q.Rating > 0 {
		v.Set("rating", strconv.Itoa(q.Rating))
	}
	return v
}

// UploadedImage is a stored product image.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

func (s *AdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if _, err := s.c.do(ctx, http.MethodGet, "/admin/dashboard/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) Analytics(ctx context.Context) (*models.Analytics, error) {
	var out models.Analytics
	if _, err := s.c.do(ctx, http.MethodGet, "/admin/analytics", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) ActivityLogs(ctx context.Context, q AdminQuery) (*Page[models.ActivityLog], error) {
	return list[models.ActivityLog](ctx, s.c, "/admin/activity-logs", q.values())
}

// Users

func (s *AdminService) Users(ctx context.Context, q AdminQuery) (*Page[models.User], error) {
	return list[models.User](ctx, s.c, "/admin/users", q.values())
}

func (s *AdminService) UpdateUserRole(ctx context.Context, id, role string) (*models.User, error) {
	var out models.User
	path := "/admin/users/" + url.PathEscape(id) + "/role"
	if _, err := s.c.do(ctx, http.MethodPatch, path, nil, models.UpdateRoleRequest{Role: role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) ToggleUserStatus(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	path := "/admin/users/" + url.PathEscape(id) + "/toggle-status"
	if _, err := s.c.do(ctx, http.MethodPatch, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Products

func (s *AdminService) Products(ctx context.Context, q AdminQuery) (*Page[models.Product], error) {
	return list[models.Product](ctx, s.c, "/admin/products", q.values())
}

func (s *AdminService) Product(ctx context.Context, id string) (*models.Product, error) {
	return s.product(ctx, http.MethodGet, "/admin/products/"+url.PathEscape(id), nil)
}

func (s *AdminService) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	return s.product(ctx, http.MethodPost, "/admin/products", req)
}

func (s *AdminService) UpdateProduct(ctx context.Context, id string, req models.ProductRequest) (*models.Product, error) {
	return s.product(ctx, http.MethodPut, "/admin/products/"+url.PathEscape(id), req)
}

func (s *AdminService) DeleteProduct(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/admin/products/"+url.PathEscape(id), nil, nil, nil)
	return err
}

func (s *AdminService) product(ctx context.Context, method, path string, body any) (*models.Product, error) {
	var out models.Product
	if _, err := s.c.do(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadProductImage sends an image as the multipart "image" field.
func (s *AdminService) UploadProductImage(ctx context.Context, filename, contentType string, r io.Reader) (*UploadedImage, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filepath.Base(filename)))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create image part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("copy image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := s.c.newRequest(ctx, http.MethodPost, "/admin/products/upload-image", nil, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var out UploadedImage
	if _, err := s.c.decode(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders

func (s *AdminService) Orders(ctx context.Context, q AdminQuery) (*Page[models.Order], error) {
	return list[models.Order](ctx, s.c, "/admin/orders", q.values())
}

func (s *AdminService) Order(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if _, err := s.c.do(ctx, http.MethodGet, "/admin/orders/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus moves an order along the status table. trackingNumber
// may be empty.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, trackingNumber string) (*models.Order, error) {
	req := models.UpdateOrderStatusRequest{Status: status}
	if trackingNumber != "" {
		req.TrackingNumber = &trackingNumber
	}

	var out models.Order
	path := "/admin/orders/" + url.PathEscape(id) + "/status"
	if _, err := s.c.do(ctx, http.MethodPatch, path, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AdminService) OrderInvoice(ctx context.Context, id string) ([]byte, error) {
	return s.c.download(ctx, "/admin/orders/"+url.PathEscape(id)+"/invoice")
}

// Reviews

func (s *AdminService) Reviews(ctx context.Context, q AdminQuery) (*Page[models.Review], error) {
	return list[models.Review](ctx, s.c, "/admin/reviews", q.values())
}

func (s *AdminService) DeleteReview(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/admin/reviews/"+url.PathEscape(id), nil, nil, nil)
	return err
}
