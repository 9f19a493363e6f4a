package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/adebayof/gromart-backend/api/responses"
	"github.com/adebayof/gromart-backend/api/validators"
	"github.com/adebayof/gromart-backend/internal/products"
	"github.com/adebayof/gromart-backend/pkg/enums"
	pkgerrors "github.com/adebayof/gromart-backend/pkg/errors"
	"github.com/adebayof/gromart-backend/pkg/logger"
)

type createProductRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	ImageURL    *string         `json:"image_url"`
	Category    string          `json:"category" validate:"required"`
	Tags        []string        `json:"tags"`
	InStock     *bool           `json:"in_stock"`
}

type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	Category    *string          `json:"category"`
	Tags        *[]string        `json:"tags"`
	InStock     *bool            `json:"in_stock"`
}

// ListProducts returns every in-stock listing for the storefront.
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		list, err := svc.FetchAvailable(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminCreateProduct adds a new catalog listing.
func AdminCreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseProductCategory(body.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
			return
		}

		inStock := true
		if body.InStock != nil {
			inStock = *body.InStock
		}

		created, err := svc.CreateProduct(r.Context(), products.CreateProductInput{
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			ImageURL:    body.ImageURL,
			Category:    category,
			Tags:        body.Tags,
			InStock:     inStock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminUpdateProduct edits an existing listing, including stock toggling.
func AdminUpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := products.UpdateProductInput{
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			ImageURL:    body.ImageURL,
			Tags:        body.Tags,
			InStock:     body.InStock,
		}
		if body.Category != nil {
			category, err := enums.ParseProductCategory(strings.TrimSpace(*body.Category))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			input.Category = &category
		}

		updated, err := svc.UpdateProduct(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}
