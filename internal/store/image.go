package store

import "strings"

// ImageKind tags the resolved image representation of a restaurant.
type ImageKind int

const (
	ImageNone ImageKind = iota
	ImageExternalLink
	ImageEmbeddedOne
	ImageEmbeddedMany
)

// Image is the single resolved form of the three legacy image columns.
type Image struct {
	Kind ImageKind
	URL  string   // set for ImageExternalLink
	Data []string // base64 payloads, ordered; set for the embedded kinds
}

// Image resolves the image columns with a fixed preference:
// embedded gallery, then single embedded image, then external link.
func (r *Restaurant) Image() Image {
	switch {
	case len(r.ImageBase64s) > 0:
		return Image{Kind: ImageEmbeddedMany, Data: r.ImageBase64s}
	case r.ImageBase64 != "":
		return Image{Kind: ImageEmbeddedOne, Data: []string{r.ImageBase64}}
	case r.ImageURL != "":
		return Image{Kind: ImageExternalLink, URL: r.ImageURL}
	default:
		return Image{Kind: ImageNone}
	}
}

// URIs returns every renderable source for the image, embedded payloads as
// data URIs. Payloads that already carry a data: prefix (the second schema
// stored them that way) pass through unchanged.
func (img Image) URIs() []string {
	switch img.Kind {
	case ImageExternalLink:
		return []string{img.URL}
	case ImageEmbeddedOne, ImageEmbeddedMany:
		uris := make([]string, len(img.Data))
		for i, data := range img.Data {
			uris[i] = dataURI(data)
		}
		return uris
	default:
		return nil
	}
}

// Preview returns the first renderable source, or "" when there is none.
func (img Image) Preview() string {
	uris := img.URIs()
	if len(uris) == 0 {
		return ""
	}
	return uris[0]
}

func dataURI(payload string) string {
	if strings.HasPrefix(payload, "data:") {
		return payload
	}
	return "data:image/jpeg;base64," + payload
}
