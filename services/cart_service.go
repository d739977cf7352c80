package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"farm-fresh/libs"
	"farm-fresh/models"
	"farm-fresh/utils"
)

const AddedToCartTitle = "Added to cart!"

func AddedNotification(name string) models.Notification {
	return models.Notification{
		Title:       AddedToCartTitle,
		Description: fmt.Sprintf("%s has been added to your cart.", name),
	}
}

// CartService applies catalog rules to session carts and renders cart
// summaries for the API.
type CartService struct {
	catalog      *CatalogService
	images       libs.ImageResolver
	freeDelivery decimal.Decimal
}

func NewCartService(catalog *CatalogService, images libs.ImageResolver, freeDeliveryThreshold decimal.Decimal) *CartService {
	return &CartService{
		catalog:      catalog,
		images:       images,
		freeDelivery: freeDeliveryThreshold,
	}
}

// AddProduct adds one unit of the product to the cart. Out of stock
// products are refused.
func (s *CartService) AddProduct(ctx context.Context, cart *Cart, productID int) (models.CartLine, models.Notification, error) {
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return models.CartLine{}, models.Notification{}, err
	}
	if !p.InStock {
		return models.CartLine{}, models.Notification{}, models.ErrOutOfStock
	}

	line := cart.Add(p)
	return line, AddedNotification(p.Name), nil
}

func (s *CartService) Summary(cart *Cart) models.CartSummary {
	return s.Summarize(cart.Lines())
}

// Summarize derives totals and display strings from lines.
func (s *CartService) Summarize(lines []models.CartLine) models.CartSummary {
	items := make([]models.CartLineView, 0, len(lines))
	for _, l := range lines {
		sub := l.Subtotal()
		view := models.CartLineView{
			CartLine:        l,
			PriceDisplay:    utils.FormatRupees(l.Price),
			Subtotal:        utils.FormatAmount(sub),
			SubtotalDisplay: utils.FormatRupees(sub),
		}
		if s.images != nil {
			view.ImageURL = s.images.URL(l.Image)
		}
		items = append(items, view)
	}

	total := TotalPrice(lines)
	return models.CartSummary{
		Items:        items,
		TotalItems:   TotalItems(lines),
		TotalPrice:   utils.FormatAmount(total),
		TotalDisplay: utils.FormatRupees(total),
		FreeDelivery: QualifiesForFreeDelivery(total, s.freeDelivery),
		Empty:        len(lines) == 0,
	}
}

// QualifiesForFreeDelivery is true for totals strictly above threshold.
func QualifiesForFreeDelivery(total, threshold decimal.Decimal) bool {
	return total.GreaterThan(threshold)
}
