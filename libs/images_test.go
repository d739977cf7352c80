package libs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestStaticImageResolver(t *testing.T) {
	r := StaticImageResolver{BaseURL: "/assets/"}

	assert.Equal(t, "/assets/tomatoes.jpg", r.URL("tomatoes.jpg"))
	assert.Equal(t, "/assets/tomatoes.jpg", r.URL("/tomatoes.jpg"))
	assert.Equal(t, "https://cdn.example.com/a.jpg", r.URL("https://cdn.example.com/a.jpg"))
	assert.Equal(t, "", r.URL(""))
}

func TestNewImageResolver_WithoutCredentials(t *testing.T) {
	r := NewImageResolver(CloudinaryCredentials{}, "farm-fresh", "/assets", zap.NewNop())

	assert.IsType(t, StaticImageResolver{}, r)
}

func TestCloudinaryImageResolver(t *testing.T) {
	creds := CloudinaryCredentials{CloudName: "demo", APIKey: "key", APISecret: "secret"}
	r, err := NewCloudinaryImageResolver(creds, "farm-fresh", StaticImageResolver{BaseURL: "/assets"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url := r.URL("tomatoes.jpg")
	assert.Contains(t, url, "res.cloudinary.com/demo/image/upload")
	assert.Contains(t, url, "farm-fresh/tomatoes")
	assert.Equal(t, "https://cdn.example.com/a.jpg", r.URL("https://cdn.example.com/a.jpg"))
}
