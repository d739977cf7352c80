package libs

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"farm-fresh/models"
)

func TestNewMailer_RequiresSettings(t *testing.T) {
	_, err := NewMailer(SMTPSettings{Host: "smtp.example.com"}, zap.NewNop())
	assert.Error(t, err)

	m, err := NewMailer(SMTPSettings{Host: "smtp.example.com", User: "shop@example.com", Pass: "pw"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "shop@example.com", m.from)
}

func TestRenderConfirmation(t *testing.T) {
	body, err := renderConfirmation(models.Order{
		OrderNumber: "ORD-1234",
		Customer:    models.CheckoutForm{Name: "Asha <Patil>", Email: "asha@example.com", Address: "Nashik"},
		Items: []models.CartLine{
			{ID: 2, Name: "Alphonso Mangoes", Price: decimal.NewFromInt(120), Quantity: 2},
		},
		TotalAmount: decimal.NewFromInt(240),
	})

	require.NoError(t, err)
	assert.Contains(t, body, "ORD-1234")
	assert.Contains(t, body, "2 × Alphonso Mangoes @ ₹120.00")
	assert.Contains(t, body, "₹240.00")
	assert.Contains(t, body, "Asha &lt;Patil&gt;")
	assert.Contains(t, body, "delivered within 24 hours")
}
