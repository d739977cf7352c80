package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"farm-fresh/middleware"
	"farm-fresh/models"
)

type CheckoutController struct{}

func NewCheckoutController() *CheckoutController {
	return &CheckoutController{}
}

// @Summary Get checkout state
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response{data=models.CheckoutSnapshot}
// @Router /checkout [get]
func (ctrl *CheckoutController) GetCheckout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Checkout retrieved",
		Data:    sess.Checkout.Snapshot(),
	})
}

// @Summary Save checkout form
// @Description Keeps the customer details draft until an order completes
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CheckoutFormRequest true "Customer details"
// @Success 200 {object} models.Response{data=models.CheckoutSnapshot}
// @Failure 409 {object} models.ErrorResponse
// @Router /checkout/form [put]
func (ctrl *CheckoutController) SaveForm(c *gin.Context) {
	var req models.CheckoutFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sess := middleware.CurrentSession(c)
	if err := sess.Checkout.SaveForm(req.Form()); err != nil {
		respondError(c, "Checkout is in progress", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Checkout form saved",
		Data:    sess.Checkout.Snapshot(),
	})
}

// @Summary Place order
// @Description Starts order processing. Without a body the saved form is used.
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CheckoutFormRequest false "Customer details"
// @Success 202 {object} models.Response{data=models.CheckoutSnapshot}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) PlaceOrder(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var req models.CheckoutFormRequest
	form := sess.Checkout.Snapshot().Form
	if err := c.ShouldBindJSON(&req); err == nil {
		form = req.Form()
	} else if !errors.Is(err, io.EOF) {
		respondBindError(c, err)
		return
	}

	snap, err := sess.Checkout.Submit(c.Request.Context(), form)
	if err != nil {
		respondError(c, "Could not place order", err)
		return
	}

	c.JSON(http.StatusAccepted, models.Response{
		Success: true,
		Message: "Processing order",
		Data:    snap,
	})
}
