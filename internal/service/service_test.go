package service

import (
	"os"
	"testing"

	"github.com/harukimoto/anitrack/internal/catalog"
	"github.com/harukimoto/anitrack/internal/db"
)

func TestMain(m *testing.M) {
	db.InitDB(":memory:")
	code := m.Run()
	db.CloseDB()
	os.Exit(code)
}

// newTestResolver builds a resolver over a canned two-season catalog so no
// test touches the network.
func newTestResolver() *ResolverService {
	media := []catalog.Media{
		{
			ID:       10,
			Title:    catalog.MediaTitle{Romaji: "Example Show"},
			Episodes: 12,
			Format:   "TV",
			Relations: catalog.Relations{Edges: []catalog.RelationEdge{
				{RelationType: "SEQUEL", Node: catalog.RelationNode{ID: 11, Format: "TV"}},
			}},
		},
		{
			ID:       11,
			Title:    catalog.MediaTitle{Romaji: "Example Show 2nd Season"},
			Episodes: 12,
			Format:   "TV",
			Relations: catalog.Relations{Edges: []catalog.RelationEdge{
				{RelationType: "PREQUEL", Node: catalog.RelationNode{ID: 10, Format: "TV"}},
			}},
		},
		{
			ID:       12,
			Title:    catalog.MediaTitle{Romaji: "Lonely Movie"},
			Episodes: 1,
			Format:   "MOVIE",
		},
	}

	r := NewResolverService(catalog.NewClient("", ""))
	r.ReplaceSnapshot(catalog.NewSnapshot(media, nil))
	return r
}
