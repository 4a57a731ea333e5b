package rss

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type RSS struct {
	Channel Channel `xml:"channel"`
}

type Channel struct {
	Title string `xml:"title"`
	Items []Item `xml:"item"`
}

// Item carries the nyaa extension fields next to the standard RSS ones.
// encoding/xml matches on local names, so "nyaa:seeders" decodes via
// xml:"seeders".
type Item struct {
	Title      string `xml:"title"`
	Link       string `xml:"link"` // .torrent download URL
	GUID       string `xml:"guid"` // view page URL, stable per release
	PubDate    string `xml:"pubDate"`
	Seeders    int    `xml:"seeders"`
	Leechers   int    `xml:"leechers"`
	Downloads  int    `xml:"downloads"`
	InfoHash   string `xml:"infoHash"`
	CategoryID string `xml:"categoryId"`
	Size       string `xml:"size"`
}

type ParsedItem struct {
	Title      string
	Link       string
	GUID       string
	InfoHash   string
	CategoryID string
	Size       string
	Downloads  int
	Seeders    int
	Date       time.Time
}

// SearchURL builds the nyaa RSS search endpoint for an anime query.
// c=1_2 restricts results to English-translated anime.
func SearchURL(baseURL, search string) string {
	if baseURL == "" {
		baseURL = "https://nyaa.si"
	}
	return fmt.Sprintf("%s/?page=rss&q=%s&c=1_2&f=0", strings.TrimRight(baseURL, "/"), url.QueryEscape(search))
}

// FetchSearch fetches and parses a nyaa search feed.
func FetchSearch(baseURL, search string) ([]ParsedItem, error) {
	return fetch(SearchURL(baseURL, search))
}

func fetch(feedURL string) ([]ParsedItem, error) {
	client := http.Client{
		Timeout: 10 * time.Second,
	}

	req, err := http.NewRequest("GET", feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var feed RSS
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, err
	}
	return convert(feed), nil
}

// Parse decodes an already-fetched feed body. Split out for tests.
func Parse(body []byte) ([]ParsedItem, error) {
	var feed RSS
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, err
	}
	return convert(feed), nil
}

func convert(feed RSS) []ParsedItem {
	var result []ParsedItem
	for _, item := range feed.Channel.Items {
		// RFC1123Z usually; nyaa sends "-0000" zones which still parse.
		t, _ := time.Parse(time.RFC1123Z, item.PubDate)

		result = append(result, ParsedItem{
			Title:      item.Title,
			Link:       item.Link,
			GUID:       item.GUID,
			InfoHash:   item.InfoHash,
			CategoryID: item.CategoryID,
			Size:       item.Size,
			Downloads:  item.Downloads,
			Seeders:    item.Seeders,
			Date:       t,
		})
	}
	return result
}
