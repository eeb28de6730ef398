package controllers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/multierr"

	"github.com/baabuu/storefront-web/api/responses"
	"github.com/baabuu/storefront-web/api/validators"
	"github.com/baabuu/storefront-web/internal/admin"
	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/internal/listing"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/logger"
)

const maxImageBytes = 10 << 20

func AdminListProducts(svc admin.Service, pageSize int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}
		params, err := listing.ParseParams(validators.ListingQuery(r), pageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.ListProducts(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, page.Items, paginationMeta(page.Meta))
	}
}

func AdminGetProduct(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func AdminCreateProduct(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload catalog.ProductInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.CreateProduct(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func AdminUpdateProduct(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload catalog.ProductInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.UpdateProduct(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func AdminDeleteProduct(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

type bulkDeleteRequest struct {
	IDs []catalog.ID `json:"ids" validate:"required,min=1"`
}

type bulkUpdateRequest struct {
	IDs     []catalog.ID         `json:"ids" validate:"required,min=1"`
	Changes catalog.ProductInput `json:"changes"`
}

func AdminBulkDeleteProducts(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bulkDeleteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.BulkDelete(r.Context(), payload.IDs)
		writeBulkResult(w, r, logg, result, err)
	}
}

func AdminBulkUpdateProducts(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bulkUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.BulkUpdate(r.Context(), payload.IDs, payload.Changes)
		writeBulkResult(w, r, logg, result, err)
	}
}

// writeBulkResult reports partial success as 200 with the per-item failures.
// When nothing succeeded the first failure becomes the response error.
func writeBulkResult(w http.ResponseWriter, r *http.Request, logg *logger.Logger, result *admin.BulkResult, err error) {
	if result == nil || (err != nil && len(result.Succeeded) == 0) {
		if errs := multierr.Errors(err); len(errs) > 0 {
			err = errs[0]
		}
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, result)
}

func AdminUploadProductImage(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		upload, err := readImageUpload(w, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.UploadImage(r.Context(), id, upload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

func readImageUpload(w http.ResponseWriter, r *http.Request) (catalog.ImageUpload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+1<<20)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		return catalog.ImageUpload{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		return catalog.ImageUpload{}, pkgerrors.New(pkgerrors.CodeValidation, "no image provided")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return catalog.ImageUpload{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read image")
	}
	if len(data) > maxImageBytes {
		return catalog.ImageUpload{}, pkgerrors.New(pkgerrors.CodeValidation, "image too large").
			WithDetails(map[string]any{"max_bytes": maxImageBytes})
	}

	upload := catalog.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
		AltText:     validators.SanitizeString(r.FormValue("alt_text"), 200),
		IsPrimary:   strings.EqualFold(strings.TrimSpace(r.FormValue("is_primary")), "true"),
	}
	if raw := strings.TrimSpace(r.FormValue("order")); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil || order < 0 {
			return catalog.ImageUpload{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"order": "must be a non-negative integer"})
		}
		upload.Order = order
	}
	return upload, nil
}

func AdminDeleteProductImage(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		imageID := catalog.ID(strings.TrimSpace(chi.URLParam(r, "imageId")))
		if err := svc.DeleteImage(r.Context(), id, imageID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
