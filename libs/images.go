package libs

import (
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"
)

// ImageResolver turns a catalog image reference into a URL a client can load.
type ImageResolver interface {
	URL(ref string) string
}

type StaticImageResolver struct {
	BaseURL string
}

func (r StaticImageResolver) URL(ref string) string {
	if ref == "" || isAbsoluteURL(ref) {
		return ref
	}
	return strings.TrimRight(r.BaseURL, "/") + "/" + strings.TrimLeft(ref, "/")
}

// CloudinaryImageResolver builds delivery URLs for images uploaded to
// Cloudinary under Folder, keyed by the reference without its extension.
type CloudinaryImageResolver struct {
	cld      *cloudinary.Cloudinary
	folder   string
	fallback ImageResolver
	logger   *zap.Logger
}

type CloudinaryCredentials struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
}

func (c CloudinaryCredentials) Configured() bool {
	return c.URL != "" || (c.CloudName != "" && c.APIKey != "" && c.APISecret != "")
}

func NewCloudinaryImageResolver(creds CloudinaryCredentials, folder string, fallback ImageResolver, logger *zap.Logger) (*CloudinaryImageResolver, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if creds.CloudName != "" && creds.APIKey != "" && creds.APISecret != "" {
		cld, err = cloudinary.NewFromParams(creds.CloudName, creds.APIKey, creds.APISecret)
		if err != nil {
			return nil, fmt.Errorf("cloudinary init from params: %w", err)
		}
	} else {
		if creds.URL == "" {
			return nil, fmt.Errorf("cloudinary credentials not configured")
		}
		cld, err = cloudinary.NewFromURL(creds.URL)
		if err != nil {
			return nil, fmt.Errorf("cloudinary init from URL: %w", err)
		}
	}

	return &CloudinaryImageResolver{cld: cld, folder: folder, fallback: fallback, logger: logger}, nil
}

func (r *CloudinaryImageResolver) URL(ref string) string {
	if ref == "" || isAbsoluteURL(ref) {
		return ref
	}

	publicID := strings.TrimSuffix(ref, path.Ext(ref))
	if r.folder != "" {
		publicID = r.folder + "/" + publicID
	}

	img, err := r.cld.Image(publicID)
	if err != nil {
		r.logger.Warn("cloudinary image reference rejected", zap.String("ref", ref), zap.Error(err))
		return r.fallback.URL(ref)
	}
	img.Transformation = "q_auto/f_auto"

	url, err := img.String()
	if err != nil {
		r.logger.Warn("cloudinary url build failed", zap.String("ref", ref), zap.Error(err))
		return r.fallback.URL(ref)
	}
	return url
}

// NewImageResolver prefers Cloudinary when credentials are present and
// otherwise serves images from the local asset directory.
func NewImageResolver(creds CloudinaryCredentials, folder, baseURL string, logger *zap.Logger) ImageResolver {
	static := StaticImageResolver{BaseURL: baseURL}
	if !creds.Configured() {
		return static
	}

	resolver, err := NewCloudinaryImageResolver(creds, folder, static, logger)
	if err != nil {
		logger.Warn("falling back to static images", zap.Error(err))
		return static
	}
	return resolver
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
