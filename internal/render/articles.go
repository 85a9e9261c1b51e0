package render

import (
	"golang.org/x/net/html"

	"github.com/DeafMist/news-dashboard/internal/dom"
	"github.com/DeafMist/news-dashboard/internal/models"
)

// CardClass marks every rendered article card.
const CardClass = "article-card"

// SimpleArticles replaces the simple list with one card per article. Cards
// without an image carry no image element.
func SimpleArticles(s Surface, articles []models.Article, placeholder string) error {
	if err := s.Clear(MountArticlesList); err != nil {
		return err
	}
	cards := make([]*html.Node, 0, len(articles))
	for _, a := range articles {
		var img *html.Node
		if a.Image != "" {
			img = image(a.Image, a.Title, placeholder)
		}
		cards = append(cards, card(a, img))
	}
	return s.Append(MountArticlesList, cards...)
}

// TopicArticles replaces the interactive grid with the visible articles and
// updates the result count. Missing images show the placeholder; broken ones
// are swapped by the page script using data-fallback.
func TopicArticles(s Surface, articles []models.Article, placeholder string) error {
	if err := ResultCount(s, len(articles)); err != nil {
		return err
	}
	if err := s.Clear(MountArticlesGrid); err != nil {
		return err
	}
	if len(articles) == 0 {
		return s.Append(MountArticlesGrid, dom.Element("p", dom.Attrs("class", "no-results"), dom.Text(NoArticles)))
	}

	cards := make([]*html.Node, 0, len(articles))
	for _, a := range articles {
		src := a.Image
		if src == "" {
			src = placeholder
		}
		cards = append(cards, card(a, image(src, a.Title, placeholder)))
	}
	return s.Append(MountArticlesGrid, cards...)
}

// ResultCount writes "Showing N articles".
func ResultCount(s Surface, n int) error {
	noun := "articles"
	if n == 1 {
		noun = "article"
	}
	return s.SetText(MountResultsCount, "Showing "+itoa(n)+" "+noun)
}

func image(src, alt, fallback string) *html.Node {
	return dom.Element("img", dom.Attrs(
		"src", src,
		"alt", alt,
		"class", "article-image",
		"loading", "lazy",
		"data-fallback", fallback,
	))
}

func card(a models.Article, img *html.Node) *html.Node {
	description := a.Description
	if description == "" {
		description = NoDescription
	}

	return dom.Element("div", dom.Attrs("class", CardClass),
		img,
		div("article-source", a.Source),
		div("article-date", a.Date),
		div("article-title", a.Title),
		div("article-description", description),
		dom.Element("a", dom.Attrs(
			"href", a.URL,
			"target", "_blank",
			"rel", "noopener noreferrer",
			"class", "article-link",
		), dom.Text("Read Full Article →")),
	)
}

func div(class, text string) *html.Node {
	return dom.Element("div", dom.Attrs("class", class), dom.Text(text))
}
