package controllers

import (
	"net/http"

	"github.com/adebayof/gromart-backend/api/responses"
	"github.com/adebayof/gromart-backend/internal/delivery"
)

// ListDeliveryAreas returns the fixed list of serviced estates and hotels.
func ListDeliveryAreas() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"areas": delivery.Areas})
	}
}
