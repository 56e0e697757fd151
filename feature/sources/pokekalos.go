package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"pocket-cards/core/reconcile"

	"github.com/PuerkitoBio/goquery"
)

// PokekalosBaseURL is the French card database.
const PokekalosBaseURL = "https://www.pokekalos.fr/jeux/mobile/pocket/cartodex/extensions/"

// Pokekalos extracts French card pages from pokekalos.fr.
// Sets are addressed by slug; pages carry no set code, so set details are
// synthesized from the set definition.
type Pokekalos struct {
	fetcher *Fetcher
	baseURL string
}

// NewPokekalos creates the French source.
func NewPokekalos(fetcher *Fetcher) *Pokekalos {
	return &Pokekalos{fetcher: fetcher, baseURL: PokekalosBaseURL}
}

func (s *Pokekalos) Name() string     { return "pokekalos" }
func (s *Pokekalos) Language() string { return LanguageFR }

// PageURL returns the card page of a set position, e.g. .../extensions/promo-a/cartes/9.html.
func (s *Pokekalos) PageURL(set reconcile.SetDefinition, number int) string {
	slug := set.Slug
	if slug == "" {
		slug = strings.ToLower(set.Code)
	}
	return fmt.Sprintf("%s%s/cartes/%d.html", s.baseURL, slug, number)
}

// Extract implements reconcile.Source.
func (s *Pokekalos) Extract(ctx context.Context, set reconcile.SetDefinition, number int) (reconcile.RawCard, error) {
	pageURL := s.PageURL(set, number)
	body, err := s.fetcher.Get(ctx, pageURL)
	if err != nil {
		return reconcile.RawCard{}, &FetchError{Source: s.Name(), Set: set.Code, Number: number, Stage: StageFetch, Err: err}
	}
	raw, err := ParsePokekalos(body, pageURL, set.Promo)
	if err != nil {
		return reconcile.RawCard{}, &FetchError{Source: s.Name(), Set: set.Code, Number: number, Stage: StageParse, Err: err}
	}
	raw.LocalNumber = number
	raw.SetDetails = fmt.Sprintf("%s (%s)", set.DisplayName, set.Code)
	return raw, nil
}

// ParsePokekalos reads the card fields of a pokekalos card page.
// Promo pages have no rarity. Several pack links are joined with the pack
// option separator so that the normalizer sees every option.
func ParsePokekalos(html []byte, pageURL string, promo bool) (reconcile.RawCard, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return reconcile.RawCard{}, err
	}

	title := normSpace(doc.Find("h1.title-page").First().Text())
	if i := strings.LastIndex(title, " - "); i >= 0 {
		title = strings.TrimSpace(title[i+3:])
	}
	if title == "" {
		return reconcile.RawCard{}, errors.New("card title not found")
	}

	raw := reconcile.RawCard{Name: title}

	if src, ok := doc.Find("center img").First().Attr("src"); ok {
		raw.ImageURL = resolveURL(pageURL, src)
	}

	if !promo {
		raw.RarityText = pokekalosRarity(doc.Find("div.item.flexItem").First())
	}

	var packs []string
	doc.Find(`ul[style*="margin-top"]`).First().Find("li").Each(func(_ int, li *goquery.Selection) {
		text := li.Find("a").First().Text()
		if text == "" {
			text = li.Text()
		}
		if text = normSpace(text); text != "" {
			packs = append(packs, text)
		}
	})
	raw.PackText = strings.Join(packs, " "+reconcile.PackOptionSeparator+" ")

	return raw, nil
}

// pokekalosRarity turns the rarity icons into glyphs: one ◊ per diamond, one ☆
// per star or shiny icon, and "Crown Rare" for the crown.
func pokekalosRarity(box *goquery.Selection) string {
	icons := box.Find("img.carte_rarete")
	if icons.Length() == 0 {
		icons = box.Find("img.carte_icone")
	}
	if icons.Length() == 0 {
		return ""
	}

	src := icons.First().AttrOr("src", "")
	switch {
	case strings.Contains(src, "diamant"):
		return strings.Repeat("◊", icons.Length())
	case strings.Contains(src, "etoile"), strings.Contains(src, "shiny"):
		return strings.Repeat("☆", icons.Length())
	case strings.Contains(src, "couronne"):
		return "Crown Rare"
	}
	return ""
}
