// Copyright (c) 2026 TrendHive. All rights reserved.

package commerce

import (
	"net/http"

	requestutil "github.com/trendhive/trendhive/internal/platform/request"
	"github.com/trendhive/trendhive/internal/platform/respond"
	"github.com/trendhive/trendhive/internal/platform/validate"
)

type updateBagItemRequest struct {
	Quantity int `json:"quantity"`
}

/*
BagSnapshot returns the resolved bag with totals.

GET /api/products/cart

Response:
  - 200: BagSnapshot (deleted products skipped, discount always 0)
*/
func (handler *Handler) bagSnapshot(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := handler.commerceService.BagSnapshot(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, snapshot)
}

/*
AddToBag puts one unit of a product into the bag.

POST /api/products/cart/{id}

Response:
  - 200: []BagItem: Updated bag
  - 404: ErrNotFound: Unknown product id
*/
func (handler *Handler) addToBag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, err := handler.commerceService.AddToBag(request.Context(), userID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

/*
UpdateBagItem sets the exact quantity of a bag entry.

PUT /api/products/cart/{id}

Request:
  - Body: updateBagItemRequest (Quantity >= 1)

Response:
  - 200: []BagItem: Updated bag
  - 400: ErrInvalidJSON: Quantity below 1
  - 404: ErrNotFound: Product not in bag
*/
func (handler *Handler) updateBagItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateBagItemRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	items, err := handler.commerceService.UpdateBagItem(
		request.Context(), userID, requestutil.Param(request, "id"), input.Quantity,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

/*
RemoveFromBag deletes a product's entry from the bag. Idempotent.

DELETE /api/products/cart/{id}

Response:
  - 200: []BagItem: Updated bag (success even when the product was absent)
*/
func (handler *Handler) removeFromBag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, err := handler.commerceService.RemoveFromBag(request.Context(), userID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

/*
ClearBag empties the bag unconditionally.

DELETE /api/products/cart

Response:
  - 200: Success message
*/
func (handler *Handler) clearBag(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.commerceService.ClearBag(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Bag cleared",
	})
}
