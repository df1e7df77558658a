package legis

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/time/rate"
)

// DefaultRosterURL is the General Assembly's legislator listing.
const DefaultRosterURL = "https://leg.colorado.gov/legislators"

const rosterTableID = "legislators-overview-table"

// ScraperOptions configures a Scraper.
type ScraperOptions struct {
	Client    *http.Client
	UserAgent string
	// DetailInterval spaces out detail page requests. Zero means 200ms.
	DetailInterval time.Duration
	// SkipDetails fetches the roster table only.
	SkipDetails bool
}

// Scraper builds legislator records from the roster page and each
// legislator's detail page.
type Scraper struct {
	client      *http.Client
	userAgent   string
	limiter     *rate.Limiter
	skipDetails bool
}

// NewScraper creates a scraper.
func NewScraper(opts ScraperOptions) *Scraper {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	interval := opts.DetailInterval
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "colegis/0.1"
	}
	return &Scraper{
		client:      client,
		userAgent:   ua,
		limiter:     rate.NewLimiter(rate.Every(interval), 1),
		skipDetails: opts.SkipDetails,
	}
}

// Scrape fetches the roster and, unless disabled, every detail page.
// A failed detail page is logged and leaves that legislator without
// committees or counties.
func (s *Scraper) Scrape(ctx context.Context, rosterURL string) ([]Record, error) {
	body, err := s.get(ctx, rosterURL)
	if err != nil {
		return nil, eris.Wrap(err, "legis: fetch roster")
	}
	defer body.Close()

	records, err := ParseRoster(body, rosterURL)
	if err != nil {
		return nil, err
	}
	zap.L().Info("roster parsed", zap.Int("legislators", len(records)))

	if s.skipDetails {
		return records, nil
	}

	for i := range records {
		if records[i].Link == "" {
			continue
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "legis: rate limit wait")
		}
		committees, counties, err := s.fetchDetail(ctx, records[i].Link)
		if err != nil {
			zap.L().Warn("legislator detail fetch failed",
				zap.String("name", records[i].Name),
				zap.String("link", records[i].Link),
				zap.Error(err),
			)
			continue
		}
		records[i].Committees = committees
		records[i].Counties = counties
	}
	return records, nil
}

func (s *Scraper) fetchDetail(ctx context.Context, link string) ([]Committee, []string, error) {
	body, err := s.get(ctx, link)
	if err != nil {
		return nil, nil, err
	}
	defer body.Close()
	return ParseDetail(body)
}

func (s *Scraper) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "get %s", rawURL)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, eris.Errorf("get %s: status %d", rawURL, resp.StatusCode)
	}
	return resp.Body, nil
}

// ParseRoster extracts records from the roster table. Relative legislator
// links are resolved against pageURL.
func ParseRoster(r io.Reader, pageURL string) ([]Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, eris.Wrap(err, "legis: parse roster html")
	}

	table := findFirst(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Table && attr(n, "id") == rosterTableID
	})
	if table == nil {
		return nil, eris.Errorf("legis: roster table %q not found", rosterTableID)
	}
	tbody := findFirst(table, isAtom(atom.Tbody))
	if tbody == nil {
		return []Record{}, nil
	}

	base, _ := url.Parse(pageURL)

	records := []Record{}
	for _, row := range findAll(tbody, isAtom(atom.Tr)) {
		cells := findAll(row, isAtom(atom.Td))
		if len(cells) < 4 {
			continue
		}

		chamber := House
		if strings.Contains(text(cells[0]), "Senator") {
			chamber = Senate
		}

		var rec Record
		rec.Chamber = chamber
		if a := findFirst(cells[1], isAtom(atom.A)); a != nil {
			rec.Name = text(a)
			rec.Link = resolveLink(base, attr(a, "href"))
		}
		if d := findFirst(cells[2], hasClass("field-content")); d != nil {
			rec.District = District(Key(text(d)))
		}
		if p := findFirst(cells[3], hasClass("field-content")); p != nil {
			rec.Party = text(p)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ParseDetail extracts committee assignments and counties served from a
// legislator's detail page.
func ParseDetail(r io.Reader) ([]Committee, []string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, eris.Wrap(err, "legis: parse detail html")
	}

	var committees []Committee
	for _, block := range findAll(doc, hasClass("committee-assignment")) {
		var c Committee
		if link := findFirst(block, hasClass("committee-link")); link != nil {
			if a := findFirst(link, isAtom(atom.A)); a != nil {
				c.Name = text(a)
			}
		}
		if role := findFirst(block, hasClass("committee-role")); role != nil {
			if span := findFirst(role, isAtom(atom.Span)); span != nil {
				c.Role = text(span)
			}
		}
		if c.Name != "" {
			committees = append(committees, c)
		}
	}

	var counties []string
	for _, field := range findAll(doc, hasClass("field-name-field-counties")) {
		for _, item := range findAll(field, hasClass("field-item")) {
			if county := text(item); county != "" {
				counties = append(counties, county)
			}
		}
	}
	return committees, counties, nil
}

func resolveLink(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") || base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// DOM helpers

type matcher func(*html.Node) bool

func isAtom(a atom.Atom) matcher {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && n.DataAtom == a }
}

func hasClass(class string) matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findAll returns matching descendants of n in document order.
func findAll(n *html.Node, match matcher) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			out = append(out, c)
		}
		out = append(out, findAll(c, match)...)
	}
	return out
}

func findFirst(n *html.Node, match matcher) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// text joins the stripped text nodes under n.
func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
