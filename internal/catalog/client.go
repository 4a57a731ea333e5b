package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	GraphQLEndpoint = "https://graphql.anilist.co"
)

type Client struct {
	client *resty.Client
	Token  string
}

func NewClient(token string, proxyURL string) *Client {
	c := resty.New()
	c.SetTimeout(10 * time.Second)
	if proxyURL != "" {
		c.SetProxy(proxyURL)
	}
	if token != "" {
		c.SetHeader("Authorization", "Bearer "+token)
	}
	c.SetHeader("Content-Type", "application/json")
	c.SetHeader("Accept", "application/json")

	return &Client{
		client: c,
		Token:  token,
	}
}

type MediaTitle struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
	Native  string `json:"native"`
}

type CoverImage struct {
	ExtraLarge string `json:"extraLarge"`
	Large      string `json:"large"`
	Medium     string `json:"medium"`
}

type RelationNode struct {
	ID     int    `json:"id"`
	Format string `json:"format"`
}

type RelationEdge struct {
	RelationType string       `json:"relationType"`
	Node         RelationNode `json:"node"`
}

type Relations struct {
	Edges []RelationEdge `json:"edges"`
}

type Media struct {
	ID           int        `json:"id"`
	Title        MediaTitle `json:"title"`
	Synonyms     []string   `json:"synonyms"`
	Episodes     int        `json:"episodes"`
	Format       string     `json:"format"`
	CoverImage   CoverImage `json:"coverImage"`
	Description  string     `json:"description"`
	AverageScore int        `json:"averageScore"`
	Relations    Relations  `json:"relations"`
}

// mediaFields is shared by every query; the matcher needs the title variants
// and synonyms, the sequel walk needs episodes/format/relations.
const mediaFields = `
	id
	title {
	  romaji
	  english
	  native
	}
	synonyms
	episodes
	format
	coverImage {
	  extraLarge
	}
	description(asHtml: false)
	averageScore
	relations {
	  edges {
	    relationType
	    node {
	      id
	      format
	    }
	  }
	}
`

type pageData struct {
	Media []Media `json:"media"`
}

type searchResponseData struct {
	Page pageData `json:"Page"`
}

type searchResponse struct {
	Data   searchResponseData `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type mediaResponseData struct {
	Media Media `json:"Media"`
}

type mediaResponse struct {
	Data   mediaResponseData `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) post(payload map[string]interface{}) ([]byte, error) {
	resp, err := c.client.R().
		SetBody(payload).
		Post(GraphQLEndpoint)

	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("AniList API Error: %s", resp.Status())
	}
	return resp.Body(), nil
}

// GetAnimeInfo fetches a page of media by id. AniList caps pages at 50
// entries, so callers pass chunks.
func (c *Client) GetAnimeInfo(ids []int) ([]Media, error) {
	graphqlQuery := fmt.Sprintf(`
	query ($ids: [Int]) {
	  Page(page: 1, perPage: 50) {
	    media(id_in: $ids, type: ANIME) {%s}
	  }
	}
	`, mediaFields)
	payload := map[string]interface{}{
		"query": graphqlQuery,
		"variables": map[string]interface{}{
			"ids": ids,
		},
	}

	body, err := c.post(payload)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("AniList GraphQL Error: %s", result.Errors[0].Message)
	}
	return result.Data.Page.Media, nil
}

// SearchAnime returns the closest catalog entries for a free-text query.
func (c *Client) SearchAnime(query string, perPage int) ([]Media, error) {
	if perPage <= 0 {
		perPage = 10
	}
	graphqlQuery := fmt.Sprintf(`
	query ($search: String, $perPage: Int) {
	  Page(page: 1, perPage: $perPage) {
	    media(search: $search, type: ANIME, sort: SEARCH_MATCH) {%s}
	  }
	}
	`, mediaFields)
	payload := map[string]interface{}{
		"query": graphqlQuery,
		"variables": map[string]interface{}{
			"search":  query,
			"perPage": perPage,
		},
	}

	body, err := c.post(payload)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("AniList GraphQL Error: %s", result.Errors[0].Message)
	}
	return result.Data.Page.Media, nil
}

// Browse lists seasonal anime, page by page.
func (c *Client) Browse(year int, season string, format string, page int) ([]Media, error) {
	graphqlQuery := fmt.Sprintf(`
	query ($year: Int, $season: MediaSeason, $format: MediaFormat, $page: Int) {
	  Page(page: $page, perPage: 50) {
	    media(seasonYear: $year, season: $season, format: $format, type: ANIME, sort: POPULARITY_DESC) {%s}
	  }
	}
	`, mediaFields)
	variables := map[string]interface{}{
		"page": page,
	}
	if year != 0 {
		variables["year"] = year
	}
	if season != "" {
		variables["season"] = season
	}
	if format != "" {
		variables["format"] = format
	}
	payload := map[string]interface{}{
		"query":     graphqlQuery,
		"variables": variables,
	}

	body, err := c.post(payload)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("AniList GraphQL Error: %s", result.Errors[0].Message)
	}
	return result.Data.Page.Media, nil
}

// GetAnimeDetails fetches a single entry.
func (c *Client) GetAnimeDetails(id int) (*Media, error) {
	graphqlQuery := fmt.Sprintf(`
	query ($id: Int) {
	  Media(id: $id, type: ANIME) {%s}
	}
	`, mediaFields)
	payload := map[string]interface{}{
		"query": graphqlQuery,
		"variables": map[string]interface{}{
			"id": id,
		},
	}

	body, err := c.post(payload)
	if err != nil {
		return nil, err
	}

	var result mediaResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("AniList GraphQL Error: %s", result.Errors[0].Message)
	}
	return &result.Data.Media, nil
}
