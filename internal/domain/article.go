package domain

// Article is a core entity describing a headline fetched from the news provider.
// The URL doubles as the deduplication key; items without one are unusable.
type Article struct {
	Title       string
	URL         string
	Description string
}

// Summary returns the text used to seed downstream generation, falling back
// to the title when the provider omitted a description.
func (a Article) Summary() string {
	if a.Description != "" {
		return a.Description
	}
	return a.Title
}

// GeneratedAssets carries everything produced between selection and
// publishing. It lives only for the duration of one pipeline run.
type GeneratedAssets struct {
	ImageDirective string
	ImageURL       string
	Caption        string
}
