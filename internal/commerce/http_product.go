// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

import (
	"net/http"

	requestutil "github.com/trendhive/trendhive/internal/platform/request"
	"github.com/trendhive/trendhive/internal/platform/respond"
	"github.com/trendhive/trendhive/internal/platform/validate"
	"github.com/trendhive/trendhive/pkg/pagination"
)

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
}

func (input productRequest) toInput() ProductInput {
	return ProductInput{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
	}
}

/*
ListProducts returns a catalog page.

GET /api/products?q=&category=&page=&limit=

Response:
  - 200: []Product + pagination meta
*/
func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	products, total, err := handler.commerceService.ListProducts(
		request.Context(), query.Get("q"), query.Get("category"), params,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetProduct fetches a single catalog entry.

GET /api/products/{id}

Response:
  - 200: Product
  - 404: ErrNotFound: Unknown product id
*/
func (handler *Handler) getProduct(writer http.ResponseWriter, request *http.Request) {
	product, err := handler.commerceService.GetProduct(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

/*
CreateProduct adds a catalog entry.

POST /api/products

Request:
  - Body: productRequest

Response:
  - 201: Product
  - 400: ErrInvalidJSON: Validation failure
  - 409: ErrConflict: Duplicate slug
*/
func (handler *Handler) createProduct(writer http.ResponseWriter, request *http.Request) {
	var input productRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	product, err := handler.commerceService.CreateProduct(request.Context(), input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, product)
}

/*
UpdateProduct edits a catalog entry.

PUT /api/products/{id}

Response:
  - 200: Product: Updated entry
  - 404: ErrNotFound: Unknown product id
*/
func (handler *Handler) updateProduct(writer http.ResponseWriter, request *http.Request) {
	var input productRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	product, err := handler.commerceService.UpdateProduct(
		request.Context(), requestutil.Param(request, "id"), input.toInput(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

/*
DeleteProduct removes a catalog entry.

DELETE /api/products/{id}

Response:
  - 200: Success message
  - 404: ErrNotFound: Unknown product id
*/
func (handler *Handler) deleteProduct(writer http.ResponseWriter, request *http.Request) {
	if err := handler.commerceService.DeleteProduct(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Product deleted",
	})
}
