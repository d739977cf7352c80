package models

type AddToCartRequest struct {
	ProductID int `json:"product_id" form:"product_id" binding:"required,gt=0"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" form:"quantity" binding:"required,min=0"`
}

type CheckoutFormRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email" binding:"omitempty,email"`
	Address string `json:"address" form:"address"`
}

func (r CheckoutFormRequest) Form() CheckoutForm {
	return CheckoutForm{Name: r.Name, Email: r.Email, Address: r.Address}.Trimmed()
}
