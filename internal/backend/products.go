package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/baabuu/storefront-web/internal/catalog"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
)

// maxBufferPages bounds ListAllProducts when the API keeps reporting a next page.
const maxBufferPages = 50

// ProductQuery is the server-side filtering the catalog API understands.
type ProductQuery struct {
	Category string
	Search   string
	Featured bool
	Hot      bool
	Ordering string
	Page     int
	PageSize int
}

// Values renders the query string.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	if c := strings.TrimSpace(q.Category); c != "" {
		v.Set("category", c)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	if q.Hot {
		v.Set("hot", "true")
	}
	if q.Ordering != "" {
		v.Set("sort", q.Ordering)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return v
}

// ListProducts fetches a single page of products.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (Page[catalog.Product], error) {
	var raw json.RawMessage
	err := c.do(ctx, request{
		operation: "list_products",
		method:    http.MethodGet,
		endpoint:  "/products/",
		query:     q.Values(),
	}, &raw)
	if err != nil {
		return Page[catalog.Product]{}, err
	}
	page, err := decodePage[catalog.Product](raw)
	if err != nil {
		return Page[catalog.Product]{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode product list")
	}
	return page, nil
}

// ListAllProducts follows pagination until the whole matching collection is
// buffered. Page size defaults to the configured buffer size.
func (c *Client) ListAllProducts(ctx context.Context, q ProductQuery) ([]catalog.Product, error) {
	if q.PageSize <= 0 {
		q.PageSize = c.buffer
	}
	q.Page = 1

	var all []catalog.Product
	for i := 0; i < maxBufferPages; i++ {
		page, err := c.ListProducts(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		if page.Next == "" || len(page.Results) == 0 || (page.Count > 0 && len(all) >= page.Count) {
			break
		}
		q.Page++
	}
	if all == nil {
		all = []catalog.Product{}
	}
	return all, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id catalog.ID) (catalog.Product, error) {
	var p catalog.Product
	err := c.do(ctx, request{
		operation: "get_product",
		method:    http.MethodGet,
		endpoint:  "/products/" + url.PathEscape(id.String()) + "/",
	}, &p)
	return p, err
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	var p catalog.Product
	err := c.do(ctx, request{
		operation: "create_product",
		method:    http.MethodPost,
		endpoint:  "/products/",
		body:      in,
	}, &p)
	return p, err
}

// UpdateProduct applies a partial update.
func (c *Client) UpdateProduct(ctx context.Context, id catalog.ID, in catalog.ProductInput) (catalog.Product, error) {
	var p catalog.Product
	err := c.do(ctx, request{
		operation: "update_product",
		method:    http.MethodPatch,
		endpoint:  "/products/" + url.PathEscape(id.String()) + "/",
		body:      in,
	}, &p)
	return p, err
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id catalog.ID) error {
	return c.do(ctx, request{
		operation: "delete_product",
		method:    http.MethodDelete,
		endpoint:  "/products/" + url.PathEscape(id.String()) + "/",
	}, nil)
}

// UploadImage attaches a gallery image to a product.
func (c *Client) UploadImage(ctx context.Context, id catalog.ID, upload catalog.ImageUpload) (catalog.ProductImage, error) {
	body, contentType, err := encodeImageUpload(upload)
	if err != nil {
		return catalog.ProductImage{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode image upload")
	}
	var img catalog.ProductImage
	err = c.do(ctx, request{
		operation:   "upload_image",
		method:      http.MethodPost,
		endpoint:    "/products/" + url.PathEscape(id.String()) + "/upload_image/",
		rawBody:     body,
		contentType: contentType,
	}, &img)
	return img, err
}

// DeleteImage removes a gallery image from a product.
func (c *Client) DeleteImage(ctx context.Context, productID, imageID catalog.ID) error {
	return c.do(ctx, request{
		operation: "delete_image",
		method:    http.MethodDelete,
		endpoint:  "/products/" + url.PathEscape(productID.String()) + "/delete_image/",
		body:      map[string]string{"image_id": imageID.String()},
	}, nil)
}

func encodeImageUpload(upload catalog.ImageUpload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+escapeQuotes(upload.Filename)+`"`)
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"alt_text", upload.AltText},
		{"order", strconv.Itoa(upload.Order)},
		{"is_primary", strconv.FormatBool(upload.IsPrimary)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf, mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
