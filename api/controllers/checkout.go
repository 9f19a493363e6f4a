package controllers

import (
	"net/http"

	"github.com/adebayof/gromart-backend/api/responses"
	"github.com/adebayof/gromart-backend/api/validators"
	"github.com/adebayof/gromart-backend/internal/checkout"
	"github.com/adebayof/gromart-backend/pkg/db/models"
	pkgerrors "github.com/adebayof/gromart-backend/pkg/errors"
	"github.com/adebayof/gromart-backend/pkg/logger"
)

type checkoutRequest struct {
	DeliveryAddress string `json:"delivery_address" validate:"required,max=500"`
	EstateOrHotel   string `json:"estate_or_hotel" validate:"required,max=120"`
	PhoneNumber     string `json:"phone_number" validate:"required,max=32"`
}

type checkoutResponse struct {
	Order   *models.Order `json:"order"`
	Payment string        `json:"payment"`
}

// Payment collection happens off-platform for now; the client surfaces
// this marker until a processor is wired in.
const paymentPendingIntegration = "pending integration"

// SubmitCheckout converts the caller's cart into a pending order.
func SubmitCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Submit(r.Context(), userID, checkout.SubmitInput{
			DeliveryAddress: body.DeliveryAddress,
			EstateOrHotel:   body.EstateOrHotel,
			PhoneNumber:     body.PhoneNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{
			Order:   order,
			Payment: paymentPendingIntegration,
		})
	}
}

// ManualOrder renders the cart as a WhatsApp message plus wa.me deep link.
// Delivery fields are optional here; the customer fills gaps over chat.
func ManualOrder(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		view, err := svc.ManualOrder(r.Context(), userID, checkout.SubmitInput{
			DeliveryAddress: query.Get("delivery_address"),
			EstateOrHotel:   query.Get("estate_or_hotel"),
			PhoneNumber:     query.Get("phone_number"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
