package universe

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const constituentsURL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// Constituent is one S&P 500 index member.
type Constituent struct {
	Symbol string
	Name   string
	Sector string
}

// SP500Source scrapes the S&P 500 constituents table and filters it by
// GICS sector. When a Store is attached, a successful scrape refreshes
// it and a failed scrape falls back to it.
type SP500Source struct {
	Client  *http.Client
	URL     string
	Sectors []string
	Store   *Store
}

// NewSP500Source creates the source with optional proxy support.
func NewSP500Source(sectors []string, store *Store, proxyURL string) *SP500Source {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &SP500Source{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		URL:     constituentsURL,
		Sectors: sectors,
		Store:   store,
	}
}

func (s *SP500Source) Name() string { return "sp500" }

func (s *SP500Source) Tickers() ([]string, error) {
	cons, err := s.fetch()
	switch {
	case err != nil && s.Store == nil:
		return nil, err
	case err != nil:
		log.Printf("[WARN] constituents scrape failed, using stored universe: %v", err)
		cons, err = s.Store.Constituents()
		if err != nil {
			return nil, fmt.Errorf("stored constituents: %w", err)
		}
		if len(cons) == 0 {
			return nil, fmt.Errorf("constituents store is empty and scrape failed")
		}
	default:
		if s.Store != nil {
			if err := s.Store.Replace(cons); err != nil {
				log.Printf("[WARN] refresh constituents store: %v", err)
			}
		}
	}
	return FilterBySector(cons, s.Sectors), nil
}

func (s *SP500Source) fetch() ([]Constituent, error) {
	req, err := http.NewRequest("GET", s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch constituents: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch constituents: status %d", resp.StatusCode)
	}
	return ParseConstituents(resp.Body)
}

// ParseConstituents extracts (symbol, name, sector) rows from the
// constituents wikitable.
func ParseConstituents(r io.Reader) ([]Constituent, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse constituents page: %w", err)
	}

	var cons []Constituent
	doc.Find("table#constituents tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return // header row
		}
		symbol := strings.TrimSpace(cells.Eq(0).Text())
		if symbol == "" {
			return
		}
		cons = append(cons, Constituent{
			Symbol: symbol,
			Name:   strings.TrimSpace(cells.Eq(1).Text()),
			Sector: strings.TrimSpace(cells.Eq(2).Text()),
		})
	})
	if len(cons) == 0 {
		return nil, fmt.Errorf("no constituents found in table")
	}
	return cons, nil
}

// FilterBySector returns the symbols whose GICS sector matches any of the
// wanted sectors (case-insensitive). An empty filter keeps everything.
func FilterBySector(cons []Constituent, sectors []string) []string {
	var out []string
	for _, c := range cons {
		if len(sectors) == 0 || matchSector(c.Sector, sectors) {
			out = append(out, c.Symbol)
		}
	}
	return out
}

func matchSector(sector string, want []string) bool {
	for _, w := range want {
		if strings.EqualFold(strings.TrimSpace(w), sector) {
			return true
		}
	}
	return false
}
