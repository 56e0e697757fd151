package sources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"pocket-cards/core/reconcile"
	"pocket-cards/core/utils"

	"github.com/PuerkitoBio/goquery"
)

// LimitlessBaseURL is the English card database.
const LimitlessBaseURL = "https://pocket.limitlesstcg.com/cards/"

// Limitless extracts English card pages from pocket.limitlesstcg.com.
type Limitless struct {
	fetcher *Fetcher
	baseURL string
}

// NewLimitless creates the English source.
func NewLimitless(fetcher *Fetcher) *Limitless {
	return &Limitless{fetcher: fetcher, baseURL: LimitlessBaseURL}
}

func (s *Limitless) Name() string     { return "limitless" }
func (s *Limitless) Language() string { return LanguageEN }

// PageURL returns the card page of a set position, e.g. .../cards/A3b/12.
func (s *Limitless) PageURL(set reconcile.SetDefinition, number int) string {
	return fmt.Sprintf("%s%s/%d", s.baseURL, set.Code, number)
}

// Extract implements reconcile.Source.
func (s *Limitless) Extract(ctx context.Context, set reconcile.SetDefinition, number int) (reconcile.RawCard, error) {
	pageURL := s.PageURL(set, number)
	body, err := s.fetcher.Get(ctx, pageURL)
	if err != nil {
		return reconcile.RawCard{}, &FetchError{Source: s.Name(), Set: set.Code, Number: number, Stage: StageFetch, Err: err}
	}
	raw, err := ParseLimitless(body, pageURL)
	if err != nil {
		return reconcile.RawCard{}, &FetchError{Source: s.Name(), Set: set.Code, Number: number, Stage: StageParse, Err: err}
	}
	return raw, nil
}

// ParseLimitless reads the card fields of a limitless card page.
// The local number comes from the title link, e.g. /cards/A3b/12.
func ParseLimitless(html []byte, pageURL string) (reconcile.RawCard, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return reconcile.RawCard{}, err
	}

	link := doc.Find("p.card-text-title a").First()
	name := normSpace(link.Text())
	if name == "" {
		return reconcile.RawCard{}, errors.New("card title not found")
	}

	raw := reconcile.RawCard{Name: name}

	if href, ok := link.Attr("href"); ok {
		parts := strings.Split(strings.TrimRight(href, "/"), "/")
		raw.LocalNumber = utils.ToInt(parts[len(parts)-1])
	}

	if src, ok := doc.Find("div.card-image img").First().Attr("src"); ok {
		raw.ImageURL = resolveURL(pageURL, src)
	}

	raw.RarityText = normSpace(doc.Find("table.card-prints-versions tr.current").First().Find("td").Last().Text())

	current := doc.Find("div.card-prints-current").First()
	raw.SetDetails = normSpace(current.Find("span.text-lg").First().Text())

	packText := current.Find("span").Last().Text()
	if i := strings.LastIndex(packText, "·"); i >= 0 {
		packText = packText[i+len("·"):]
	}
	raw.PackText = normSpace(packText)

	return raw, nil
}
