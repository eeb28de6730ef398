package admin

import (
	"context"
	"strings"

	"go.uber.org/multierr"

	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/internal/listing"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
)

// maxBulkItems caps how many products one bulk request may touch.
const maxBulkItems = 100

// BulkResult reports the outcome of a bulk operation per product.
type BulkResult struct {
	Requested int           `json:"requested"`
	Succeeded []catalog.ID  `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// BulkFailure is one product a bulk operation could not apply to.
type BulkFailure struct {
	ID      catalog.ID `json:"id"`
	Code    string     `json:"code"`
	Message string     `json:"message"`
}

// ImageView is an uploaded gallery image with its URL resolved.
type ImageView struct {
	ID        catalog.ID `json:"id"`
	URL       *string    `json:"url"`
	AltText   string     `json:"alt_text,omitempty"`
	Order     int        `json:"order"`
	IsPrimary bool       `json:"is_primary"`
}

func (s *service) ListProducts(ctx context.Context, params listing.Params) (*listing.ViewPage, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if params.PageSize <= 0 {
		params.PageSize = s.cfg.Catalog.AdminPageSize
	}
	page := listing.Apply(snap.Products, params).Views(s.resolver)
	return &page, nil
}

func (s *service) GetProduct(ctx context.Context, id catalog.ID) (*catalog.ProductView, error) {
	if id.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	p, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	view := catalog.NewProductView(p, s.resolver)
	return &view, nil
}

func (s *service) CreateProduct(ctx context.Context, in catalog.ProductInput) (*catalog.ProductView, error) {
	if err := in.Validate(true); err != nil {
		return nil, err
	}
	p, err := s.catalog.CreateProduct(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.logg.Info(s.logg.WithField(ctx, "product_id", p.ID.String()), "product created")
	view := catalog.NewProductView(p, s.resolver)
	return &view, nil
}

func (s *service) UpdateProduct(ctx context.Context, id catalog.ID, in catalog.ProductInput) (*catalog.ProductView, error) {
	if id.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := in.Validate(false); err != nil {
		return nil, err
	}
	p, err := s.catalog.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	view := catalog.NewProductView(p, s.resolver)
	return &view, nil
}

func (s *service) DeleteProduct(ctx context.Context, id catalog.ID) error {
	if id.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logg.Info(s.logg.WithField(ctx, "product_id", id.String()), "product deleted")
	return nil
}

func (s *service) BulkUpdate(ctx context.Context, ids []catalog.ID, patch catalog.ProductInput) (*BulkResult, error) {
	if patch == (catalog.ProductInput{}) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := patch.Validate(false); err != nil {
		return nil, err
	}
	return s.bulk(ctx, "bulk_update", ids, func(ctx context.Context, id catalog.ID) error {
		_, err := s.catalog.UpdateProduct(ctx, id, patch)
		return err
	})
}

func (s *service) BulkDelete(ctx context.Context, ids []catalog.ID) (*BulkResult, error) {
	return s.bulk(ctx, "bulk_delete", ids, s.catalog.DeleteProduct)
}

// bulk applies fn to every id in order. Failures do not stop the run; they
// are collected in the result and combined into the returned error.
func (s *service) bulk(ctx context.Context, op string, ids []catalog.ID, fn func(context.Context, catalog.ID) error) (*BulkResult, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one product id is required")
	}
	if len(ids) > maxBulkItems {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "too many products in one request").
			WithDetails(map[string]any{"max": maxBulkItems})
	}

	result := &BulkResult{
		Requested: len(ids),
		Succeeded: []catalog.ID{},
		Failed:    []BulkFailure{},
	}
	var errs error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}
		if err := fn(ctx, id); err != nil {
			errs = multierr.Append(errs, err)
			result.Failed = append(result.Failed, failureFor(id, err))
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	if len(result.Succeeded) > 0 {
		s.invalidate(ctx)
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"operation": op,
		"requested": result.Requested,
		"succeeded": len(result.Succeeded),
		"failed":    len(result.Failed),
	})
	if errs != nil {
		s.logg.Warn(logCtx, "bulk operation finished with failures")
	} else {
		s.logg.Info(logCtx, "bulk operation finished")
	}
	return result, errs
}

func failureFor(id catalog.ID, err error) BulkFailure {
	f := BulkFailure{ID: id, Code: string(pkgerrors.CodeInternal), Message: err.Error()}
	if typed := pkgerrors.As(err); typed != nil {
		f.Code = string(typed.Code())
		f.Message = typed.Message()
	}
	return f
}

func dedupeIDs(ids []catalog.ID) []catalog.ID {
	seen := make(map[catalog.ID]struct{}, len(ids))
	out := make([]catalog.ID, 0, len(ids))
	for _, id := range ids {
		id = catalog.ID(strings.TrimSpace(id.String()))
		if id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *service) UploadImage(ctx context.Context, id catalog.ID, upload catalog.ImageUpload) (*ImageView, error) {
	if id.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if len(upload.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no image provided")
	}
	img, err := s.catalog.UploadImage(ctx, id, upload)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	view := &ImageView{
		ID:        img.ID,
		AltText:   img.AltText,
		Order:     img.Order,
		IsPrimary: img.IsPrimary,
	}
	if u, ok := s.resolver.ResolveProductImage(img.ImageRefs()); ok {
		view.URL = &u
	}
	return view, nil
}

func (s *service) DeleteImage(ctx context.Context, productID, imageID catalog.ID) error {
	if productID.IsZero() || imageID.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "image_id is required")
	}
	if err := s.catalog.DeleteImage(ctx, productID, imageID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}
