package webpage

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/platepulse/backend/internal/domain"
	"golang.org/x/net/html"
)

// maxBodyBytes caps how much of a page is read; homepages beyond this
// are truncated rather than rejected
const maxBodyBytes = 2 << 20

// phoneRegex matches common North American phone formats in page text
var phoneRegex = regexp.MustCompile(`\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]\d{4}`)

// Fetcher retrieves pages with a plain GET and extracts SEO signals and
// structured-data menus. No script execution, no render tier.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a page fetcher
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchSignals downloads a page and extracts its basic SEO signals
func (f *Fetcher) FetchSignals(ctx context.Context, pageURL string) (*domain.PageSignals, error) {
	root, finalURL, err := f.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	signals := &domain.PageSignals{
		URL:   finalURL,
		HTTPS: strings.HasPrefix(finalURL, "https://"),
	}
	collectSignals(root, signals)

	log.Printf("[PAGE] signals for %s: title=%q h1=%v menuLink=%v ld=%v",
		finalURL, signals.Title, signals.HasH1, signals.HasMenuLink, signals.HasStructuredData)
	return signals, nil
}

// FetchMenu extracts menu items from the page's JSON-LD blocks.
// Pages without structured menu data yield an empty slice, not an error.
func (f *Fetcher) FetchMenu(ctx context.Context, pageURL string, channel domain.Channel) ([]domain.MenuItem, error) {
	root, _, err := f.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var items []domain.MenuItem
	for _, block := range collectJSONLD(root) {
		items = append(items, parseMenuLD(block, channel)...)
	}

	log.Printf("[PAGE] extracted %d %s menu items from %s", len(items), channel, pageURL)
	return items, nil
}

// fetchDocument GETs the page and parses the HTML tree
func (f *Fetcher) fetchDocument(ctx context.Context, pageURL string) (*html.Node, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrPageFetchFailure, err)
	}
	req.Header.Set("User-Agent", "PlatePulse/1.0")
	req.Header.Set("Accept", "text/html")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrPageFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: status %d", domain.ErrPageFetchFailure, resp.StatusCode)
	}

	root, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrPageFetchFailure, err)
	}

	finalURL := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return root, finalURL, nil
}

// collectSignals walks the parsed tree filling in the signal flags
func collectSignals(node *html.Node, signals *domain.PageSignals) {
	if node.Type == html.ElementNode {
		switch node.Data {
		case "title":
			if signals.Title == "" {
				signals.Title = strings.TrimSpace(textContent(node))
			}
		case "h1":
			signals.HasH1 = true
		case "meta":
			name := strings.ToLower(attr(node, "name"))
			if name == "description" && attr(node, "content") != "" {
				signals.MetaDescription = attr(node, "content")
			}
			if name == "viewport" {
				signals.HasViewportMeta = true
			}
		case "a":
			href := strings.ToLower(attr(node, "href"))
			text := strings.ToLower(textContent(node))
			if strings.Contains(href, "menu") || strings.Contains(text, "menu") {
				signals.HasMenuLink = true
			}
			if strings.HasPrefix(href, "tel:") {
				signals.HasPhoneText = true
			}
		case "script":
			if strings.EqualFold(attr(node, "type"), "application/ld+json") {
				signals.HasStructuredData = true
			}
		}
	}

	if node.Type == html.TextNode && !signals.HasPhoneText {
		if phoneRegex.MatchString(node.Data) {
			signals.HasPhoneText = true
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectSignals(child, signals)
	}
}

// collectJSONLD returns the raw contents of every ld+json script block
func collectJSONLD(node *html.Node) []string {
	var blocks []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" &&
			strings.EqualFold(attr(n, "type"), "application/ld+json") {
			blocks = append(blocks, textContent(n))
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return blocks
}

// attr returns the value of the named attribute, or empty string
func attr(node *html.Node, name string) string {
	for _, a := range node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates all text nodes beneath the node
func textContent(node *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return sb.String()
}
