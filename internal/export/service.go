// Package export renders the catalog as downloadable JSON, CSV or XLSX files
// for the admin console.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baabuu/storefront-web/internal/backend"
	"github.com/baabuu/storefront-web/internal/catalog"
	"github.com/baabuu/storefront-web/pkg/enums"
	pkgerrors "github.com/baabuu/storefront-web/pkg/errors"
	"github.com/baabuu/storefront-web/pkg/logger"
	"github.com/baabuu/storefront-web/pkg/media"
)

const defaultPageSize = 10000

// File is a rendered export ready to be sent as an attachment.
type File struct {
	Filename    string
	ContentType string
	Body        []byte
	Records     int
}

// Source loads the collections to export directly from the catalog API.
type Source interface {
	ListAllProducts(ctx context.Context, q backend.ProductQuery) ([]catalog.Product, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
}

type Service interface {
	Export(ctx context.Context, kind enums.ExportKind, format enums.ExportFormat) (*File, error)
}

type service struct {
	source   Source
	resolver *media.Resolver
	pageSize int
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds an export service. pageSize is the page size requested
// from the catalog API while buffering products.
func NewService(source Source, resolver *media.Resolver, pageSize int, logg *logger.Logger) (Service, error) {
	if source == nil {
		return nil, errors.New("export source is required")
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{source: source, resolver: resolver, pageSize: pageSize, logg: logg, now: time.Now}, nil
}

func (s *service) Export(ctx context.Context, kind enums.ExportKind, format enums.ExportFormat) (*File, error) {
	var (
		records any
		table   Table
		count   int
	)
	switch kind {
	case enums.ExportKindProducts:
		products, err := s.source.ListAllProducts(ctx, backend.ProductQuery{PageSize: s.pageSize})
		if err != nil {
			return nil, err
		}
		records = catalog.NewProductViews(products, s.resolver)
		table = ProductTable(products, s.resolver)
		count = len(products)
	case enums.ExportKindCategories:
		categories, err := s.source.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		records = catalog.NewCategoryViews(categories, s.resolver)
		table = CategoryTable(categories, s.resolver)
		count = len(categories)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid export kind").
			WithDetails(map[string]string{"type": kind.String()})
	}

	body, err := Encode(format, records, table)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to render export")
	}

	file := &File{
		Filename:    Filename(kind, format, s.now()),
		ContentType: format.ContentType(),
		Body:        body,
		Records:     count,
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"export_kind":   kind.String(),
		"export_format": format.String(),
		"records":       count,
		"bytes":         len(body),
	}), "catalog exported")
	return file, nil
}

// Filename names an export after its kind and date, e.g. products_export_2024-05-01.csv.
func Filename(kind enums.ExportKind, format enums.ExportFormat, at time.Time) string {
	return fmt.Sprintf("%s_export_%s.%s", kind, at.Format("2006-01-02"), format)
}
