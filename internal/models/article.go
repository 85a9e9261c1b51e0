package models

// Article is a single news item. Description and Image are optional and
// empty when missing. Duplicates are kept as-is.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	Date        string `json:"date"`
	URL         string `json:"url"`
	Image       string `json:"image,omitempty"`
}
