package controllers

import (
	"net/http"

	"github.com/baabuu/storefront-web/api/responses"
	"github.com/baabuu/storefront-web/internal/admin"
	"github.com/baabuu/storefront-web/internal/export"
	"github.com/baabuu/storefront-web/pkg/enums"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/logger"
)

func AdminDashboard(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func AdminAnalytics(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Analytics(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func AdminSettings(svc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Settings())
	}
}

// AdminExport streams the requested collection as a file download.
// Query: type=products|categories, format=json|csv|xlsx.
func AdminExport(svc export.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "export service unavailable"))
			return
		}
		query := r.URL.Query()
		kind, err := enums.ParseExportKind(query.Get("type"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid export type").
				WithDetails(map[string]string{"field": "type"}))
			return
		}
		format, err := enums.ParseExportFormat(query.Get("format"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid export format").
				WithDetails(map[string]string{"field": "format"}))
			return
		}
		file, err := svc.Export(r.Context(), kind, format)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAttachment(w, file.ContentType, file.Filename, file.Body)
	}
}
