// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

import (
	"net/http"

	requestutil "github.com/trendhive/trendhive/internal/platform/request"
	"github.com/trendhive/trendhive/internal/platform/respond"
)

/*
Wishlist returns the wishlist resolved against the live catalog.

GET /api/products/wishlist

Response:
  - 200: []Product (deleted products skipped)
*/
func (handler *Handler) wishlist(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	products, err := handler.commerceService.Wishlist(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products)
}

/*
AddToWishlist puts a product on the wishlist. No duplicates.

POST /api/products/wishlist/{id}

Response:
  - 200: []string: Updated wishlist product ids
  - 404: ErrNotFound: Unknown product id
*/
func (handler *Handler) addToWishlist(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	productIDs, err := handler.commerceService.AddToWishlist(request.Context(), userID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, productIDs)
}

/*
RemoveFromWishlist takes a product off the wishlist. Idempotent.

DELETE /api/products/wishlist/{id}

Response:
  - 200: []string: Updated wishlist product ids
*/
func (handler *Handler) removeFromWishlist(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	productIDs, err := handler.commerceService.RemoveFromWishlist(request.Context(), userID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, productIDs)
}
