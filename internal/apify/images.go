package apify

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/teachme/internal/lesson"
)

// DefaultImageActor is the Google Images scraper.
const DefaultImageActor = "tnudF2IxzORPhg4r8"

var imageExtRe = regexp.MustCompile(`(?i)^(.*?\.(?:jpe?g|png|gif|bmp|webp|svg))`)

type imageInput struct {
	Queries            []string `json:"queries"`
	MaxResultsPerQuery int      `json:"maxResultsPerQuery"`
	SaveImages         bool     `json:"saveImages"`
}

type imageItem struct {
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title"`
}

// ImageResolver finds one image per descriptor with an image-search actor.
type ImageResolver struct {
	client *Client
	actor  string
	log    *zap.Logger
}

// NewImageResolver creates a resolver. An empty actor selects
// DefaultImageActor.
func NewImageResolver(client *Client, actor string, log *zap.Logger) *ImageResolver {
	if actor == "" {
		actor = DefaultImageActor
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageResolver{client: client, actor: actor, log: log}
}

// Resolve returns the first result's URL trimmed after its image
// extension. Failures are logged and reported as not found.
func (r *ImageResolver) Resolve(ctx context.Context, query string) (string, bool) {
	var items []imageItem
	err := r.client.RunSync(ctx, r.actor, imageInput{
		Queries:            []string{query},
		MaxResultsPerQuery: 1,
		SaveImages:         false,
	}, &items)
	if err != nil {
		r.log.Warn("image search failed", zap.String("query", query), zap.Error(err))
		return "", false
	}

	for _, item := range items {
		if u := TrimImageURL(item.ImageURL); u != "" {
			return u, true
		}
	}
	return "", false
}

// TrimImageURL cuts raw just after the first image file extension, dropping
// query strings and path suffixes that image CDNs append. URLs without a
// recognized extension are returned unchanged.
func TrimImageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := imageExtRe.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

var _ lesson.ImageResolver = (*ImageResolver)(nil)
