package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"farm-fresh/middleware"
	"farm-fresh/models"
	"farm-fresh/services"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// @Summary Get cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Failure 401 {object} models.ErrorResponse
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data:    ctrl.carts.Summary(sess.Cart),
	})
}

// @Summary Add to cart
// @Description Adds one unit of a product; repeated adds increase the quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AddToCartRequest true "Product to add"
// @Success 200 {object} models.Response{data=models.AddToCartResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sess := middleware.CurrentSession(c)
	_, notification, err := ctrl.carts.AddProduct(c.Request.Context(), sess.Cart, req.ProductID)
	if err != nil {
		respondError(c, "Could not add product to cart", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: notification.Title,
		Data: models.AddToCartResponse{
			Cart:         ctrl.carts.Summary(sess.Cart),
			Notification: notification,
		},
	})
}

// @Summary Update cart quantity
// @Description Sets the quantity of a cart line; 0 removes it and unknown ids are ignored
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body models.UpdateQuantityRequest true "New quantity"
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items/{id} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	id, ok := lineID(c)
	if !ok {
		return
	}

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sess := middleware.CurrentSession(c)
	if err := sess.Cart.UpdateQuantity(id, *req.Quantity); err != nil {
		respondError(c, "Invalid quantity", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart updated",
		Data:    ctrl.carts.Summary(sess.Cart),
	})
}

// @Summary Remove from cart
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response{data=models.CartSummary}
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	id, ok := lineID(c)
	if !ok {
		return
	}

	sess := middleware.CurrentSession(c)
	sess.Cart.Remove(id)

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Item removed",
		Data:    ctrl.carts.Summary(sess.Cart),
	})
}

func lineID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid product ID",
		})
		return 0, false
	}
	return id, true
}
