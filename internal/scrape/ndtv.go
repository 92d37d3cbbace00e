package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pitchside/live-engine/internal/model"
)

// NDTV scrapes the NDTV live-scores page. The scores are rendered inside
// an iframe, so the page is fetched first and then the frame it embeds.
func (s *Scraper) NDTV(ctx context.Context) ([]model.ScrapedMatch, error) {
	page, err := s.fetch(ctx, SourceNDTV, s.ndtvURL)
	if err != nil {
		return nil, err
	}

	frameURL, err := frameSource(page, s.ndtvURL)
	if err != nil {
		return nil, err
	}

	frame, err := s.fetch(ctx, SourceNDTV, frameURL)
	if err != nil {
		return nil, err
	}
	return parseNDTV(frame), nil
}

// frameSource resolves the first iframe src against the page URL.
func frameSource(doc *goquery.Document, pageURL string) (string, error) {
	src, ok := doc.Find("iframe[src]").First().Attr("src")
	src = strings.TrimSpace(src)
	if !ok || src == "" {
		return "", ErrNoFrame
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	ref, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse iframe src %q: %w", src, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func parseNDTV(doc *goquery.Document) []model.ScrapedMatch {
	out := []model.ScrapedMatch{}
	doc.Find(".sp-scr_wrp").Each(func(_ int, card *goquery.Selection) {
		m := model.ScrapedMatch{
			Description: text(card, ".description"),
			Teams:       []model.ScrapedTeam{},
		}
		card.Find(".scr_tm-wrp").Each(func(_ int, t *goquery.Selection) {
			team := model.ScrapedTeam{
				TeamName: text(t, ".scr_tm-nm"),
				Score:    text(t, ".scr_tm-run"),
			}
			team.Parsed = parsed(team.Score, "")
			m.Teams = append(m.Teams, team)
		})
		out = append(out, m)
	})
	return out
}
