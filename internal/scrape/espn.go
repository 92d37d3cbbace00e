package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pitchside/live-engine/internal/model"
)

// ESPN scrapes the ESPNcricinfo live-scores page. Each series card yields
// one ScrapedMatch per fixture it lists.
func (s *Scraper) ESPN(ctx context.Context) ([]model.ScrapedMatch, error) {
	doc, err := s.fetch(ctx, SourceESPN, s.espnURL)
	if err != nil {
		return nil, err
	}
	return parseESPN(doc), nil
}

func parseESPN(doc *goquery.Document) []model.ScrapedMatch {
	out := []model.ScrapedMatch{}
	doc.Find(".ds-mb-4").Each(func(_ int, card *goquery.Selection) {
		series := text(card, "h2 a span")

		card.Find(".ds-no-tap-higlight").Each(func(_ int, entry *goquery.Selection) {
			m := model.ScrapedMatch{
				Series: series,
				Result: text(entry, "p.ds-text-tight-s span"),
				Teams:  []model.ScrapedTeam{},
			}
			entry.Find(".ci-team-score").Each(func(_ int, t *goquery.Selection) {
				team := model.ScrapedTeam{
					TeamName: text(t, "p"),
					Score:    text(t, "strong"),
					Overs:    text(t, "span"),
					IsWinner: !strings.Contains(t.AttrOr("class", ""), "ds-opacity-50"),
				}
				team.Parsed = parsed(team.Score, team.Overs)
				m.Teams = append(m.Teams, team)
			})
			out = append(out, m)
		})
	})
	return out
}
