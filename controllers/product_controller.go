package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"farm-fresh/models"
	"farm-fresh/services"
)

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// @Summary Get products
// @Description List catalog products matching the selected filters, sorted
// @Tags Products
// @Produce json
// @Param category query string false "Category label or all" default(all)
// @Param location query string false "Location label or all" default(all)
// @Param price query string false "Price bucket" Enums(all, low, medium, high) default(all)
// @Param sort query string false "Sort key" Enums(name, price-low, price-high, rating) default(name)
// @Success 200 {object} models.ProductListResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	var filter models.FilterState
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondBindError(c, err)
		return
	}
	filter = filter.Normalize()

	products, err := ctrl.catalog.Query(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Invalid filter", err)
		return
	}

	message := "Products retrieved"
	if len(products) == 0 {
		message = "No products match the selected filters"
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Success: true,
		Message: message,
		Data:    products,
		Total:   len(products),
		Empty:   len(products) == 0,
		Filters: filter,
		Links:   ctrl.generateLinks(c, filter),
	})
}

func (ctrl *ProductController) generateLinks(c *gin.Context, f models.FilterState) models.FilterLinks {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}
	base := fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, c.Request.URL.Path)

	params := url.Values{}
	params.Set("category", f.Category)
	params.Set("location", f.Location)
	params.Set("price", string(f.PriceBucket))
	params.Set("sort", string(f.Sort))

	return models.FilterLinks{
		Self:         base + "?" + params.Encode(),
		ClearFilters: base,
	}
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid product ID",
		})
		return
	}

	product, err := ctrl.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Product not found", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product retrieved", Data: product})
}

// @Summary Get filter options
// @Description Categories, locations, price buckets and sort keys for the catalog selectors
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /filters [get]
func (ctrl *ProductController) GetFilters(c *gin.Context) {
	opts, err := ctrl.catalog.FilterOptions(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load filters", err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Filters retrieved", Data: opts})
}

// @Summary Get farmers
// @Description Farmers supplying the catalog
// @Tags Farmers
// @Produce json
// @Success 200 {object} models.Response
// @Router /farmers [get]
func (ctrl *ProductController) GetFarmers(c *gin.Context) {
	farmers, err := ctrl.catalog.Farmers(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to load farmers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Farmers retrieved", "data": farmers})
}
