package store

import (
	"testing"
	"time"

	"github.com/dmdesousa/lapis/internal/content"
	"github.com/dmdesousa/lapis/internal/model"
)

// seedContent inserts one record directly through the sync path.
func seedContent(t *testing.T, s *Store, p *content.Parsed) {
	t.Helper()
	if _, err := s.syncParsed(p); err != nil {
		t.Fatalf("seed %s: %v", p.SourcePath, err)
	}
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
	return &t
}

// seedFixture loads a small corpus with known authors, tags and dates.
func seedFixture(t *testing.T, s *Store) {
	t.Helper()
	seedContent(t, s, &content.Parsed{
		SourcePath: "/site/content/posts/gulls.md",
		Title:      "Gulls Over the Harbor",
		Type:       model.TypeArticle,
		Status:     model.StatusPublished,
		Date:       day(2014, 3, 9),
		Author:     "Daniel",
		Category:   "Photography",
		Tags:       []string{"bird", "ocean"},
	})
	seedContent(t, s, &content.Parsed{
		SourcePath: "/site/content/posts/tides.md",
		Title:      "Reading the Tides",
		Type:       model.TypeArticle,
		Status:     model.StatusDraft,
		Date:       day(2014, 12, 11),
		Author:     "Daniel",
		Category:   "Essays",
		Tags:       []string{"ocean"},
	})
	seedContent(t, s, &content.Parsed{
		SourcePath: "/site/content/posts/sparrows.md",
		Title:      "City Sparrows",
		Type:       model.TypeArticle,
		Status:     model.StatusPublished,
		Date:       day(2015, 6, 1),
		Author:     "Ana",
		Category:   "Photography",
		Tags:       []string{"bird"},
	})
	seedContent(t, s, &content.Parsed{
		SourcePath: "/site/content/pages/about.md",
		Title:      "About",
		Type:       model.TypePage,
		Status:     model.StatusPublished,
		Author:     "Daniel",
	})
}

func titles(cs []*model.Content) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.Title)
	}
	return out
}

func assertTitles(t *testing.T, got []*model.Content, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", titles(got), want)
	}
	for i, c := range got {
		if c.Title != want[i] {
			t.Fatalf("got %v, want %v", titles(got), want)
		}
	}
}

func TestSearchNoFiltersMatchesEverything(t *testing.T) {
	s := testStore(t)
	seedFixture(t, s)

	all, err := mustSearch(s, Filters{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Errorf("got %d rows, want 4: %v", len(all), titles(all))
	}
}

func TestSearchFiltersAreConjunctive(t *testing.T) {
	s := testStore(t)
	seedFixture(t, s)

	cases := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"author", Filters{Author: "Ana"}, []string{"City Sparrows"}},
		{"category", Filters{Category: "Essays"}, []string{"Reading the Tides"}},
		{"status", Filters{Status: model.StatusDraft}, []string{"Reading the Tides"}},
		{"type", Filters{Type: model.TypePage}, []string{"About"}},
		{"author and category", Filters{Author: "Daniel", Category: "Photography"}, []string{"Gulls Over the Harbor"}},
		{"author and status", Filters{Author: "Daniel", Status: model.StatusPublished}, []string{"Gulls Over the Harbor", "About"}},
		{"no match", Filters{Author: "Ana", Category: "Essays"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := mustSearch(s, tc.filters)
			if err != nil {
				t.Fatal(err)
			}
			assertTitles(t, got, tc.want...)
		})
	}
}

func TestSearchTitleSubstring(t *testing.T) {
	s := testStore(t)
	seedFixture(t, s)

	cases := []struct {
		title string
		want  []string
	}{
		{"harbor", []string{"Gulls Over the Harbor"}},
		{"THE", []string{"Gulls Over the Harbor", "Reading the Tides"}},
		{"sparrow", []string{"City Sparrows"}},
		{"zzz", nil},
	}
	for _, tc := range cases {
		got, err := mustSearch(s, Filters{Title: tc.title})
		if err != nil {
			t.Fatal(err)
		}
		assertTitles(t, got, tc.want...)
	}
}

func TestSearchTagsRequireEveryTag(t *testing.T) {
	s := testStore(t)
	seedFixture(t, s)

	cases := []struct {
		name string
		tags []string
		want []string
	}{
		{"single", []string{"ocean"}, []string{"Gulls Over the Harbor", "Reading the Tides"}},
		{"both", []string{"bird", "ocean"}, []string{"Gulls Over the Harbor"}},
		{"unknown", []string{"cliff"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := mustSearch(s, Filters{Tags: tc.tags})
			if err != nil {
				t.Fatal(err)
			}
			assertTitles(t, got, tc.want...)
		})
	}
}

func TestSearchDateBoundaries(t *testing.T) {
	s := testStore(t)
	seedFixture(t, s)

	on := func(y int, m time.Month, d int) Filters {
		return Filters{On: day(y, m, d)}
	}

	t.Run("on matching day includes", func(t *testing.T) {
		got, err := mustSearch(s, on(2014, 3, 9))
		if err != nil {
			t.Fatal(err)
		}
		assertTitles(t, got, "Gulls Over the Harbor")
	})

	t.Run("on other day excludes", func(t *testing.T) {
		got, err := mustSearch(s, on(2014, 3, 4))
		if err != nil {
			t.Fatal(err)
		}
		assertTitles(t, got)
	})

	t.Run("range is inclusive of after day", func(t *testing.T) {
		got, err := mustSearch(s, Filters{After: day(2014, 3, 9), Before: day(2014, 12, 12)})
		if err != nil {
			t.Fatal(err)
		}
		assertTitles(t, got, "Gulls Over the Harbor", "Reading the Tides")
	})

	t.Run("range excludes before day", func(t *testing.T) {
		got, err := mustSearch(s, Filters{After: day(2014, 3, 10), Before: day(2014, 12, 11)})
		if err != nil {
			t.Fatal(err)
		}
		assertTitles(t, got)
	})

	t.Run("open-ended after", func(t *testing.T) {
		got, err := mustSearch(s, Filters{After: day(2014, 12, 1)})
		if err != nil {
			t.Fatal(err)
		}
		assertTitles(t, got, "Reading the Tides", "City Sparrows")
	})

	t.Run("undated content never matches a date filter", func(t *testing.T) {
		got, err := mustSearch(s, Filters{After: day(2000, 1, 1)})
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range got {
			if c.DateCreated == nil {
				t.Errorf("undated %q matched a date filter", c.Title)
			}
		}
	})
}

func TestSearchCursorIsLazyAndSinglePass(t *testing.T) {
	s := testStore(t)
	seedFixture(t, s)

	cur, err := s.Search(Filters{Type: model.TypeArticle})
	if err != nil {
		t.Fatal(err)
	}
	defer cur.Close()

	var n int
	for cur.Next() {
		if cur.Content() == nil {
			t.Fatal("cursor positioned on nil content")
		}
		n++
	}
	if err := cur.Err(); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("iterated %d rows, want 3", n)
	}
	if cur.Next() {
		t.Error("exhausted cursor should not advance again")
	}
}

func TestSearchResolvesTags(t *testing.T) {
	s := testStore(t)
	seedFixture(t, s)

	got, err := mustSearch(s, Filters{Title: "Gulls"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %v", titles(got))
	}
	c := got[0]
	if len(c.Tags) != 2 || c.Tags[0] != "bird" || c.Tags[1] != "ocean" {
		t.Errorf("tags = %v, want [bird ocean]", c.Tags)
	}
	if c.Author != "Daniel" || c.Category != "Photography" {
		t.Errorf("author/category = %q/%q", c.Author, c.Category)
	}
}

func termNames(ts []model.Term) []string {
	var out []string
	for _, term := range ts {
		out = append(out, term.Name)
	}
	return out
}

func TestListOrderings(t *testing.T) {
	s := testStore(t)
	seedFixture(t, s)

	t.Run("by name", func(t *testing.T) {
		got, err := mustList(s, "", OrderByName, model.KindTag)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"bird", "ocean"}
		if len(got) != 2 || got[0].Name != want[0] || got[1].Name != want[1] {
			t.Errorf("got %v, want %v", termNames(got), want)
		}
	})

	t.Run("by content count", func(t *testing.T) {
		// Tip the count: a third ocean post makes ocean outrank bird.
		seedContent(t, s, &content.Parsed{
			SourcePath: "/site/content/posts/waves.md",
			Title:      "Waves",
			Type:       model.TypeArticle,
			Tags:       []string{"ocean"},
		})
		got, err := mustList(s, "", OrderByContent, model.KindTag)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].Name != "ocean" || got[1].Name != "bird" {
			t.Errorf("got %v, want [ocean bird]", termNames(got))
		}
		if got[0].Count != 3 || got[1].Count != 2 {
			t.Errorf("counts = %d/%d, want 3/2", got[0].Count, got[1].Count)
		}
	})

	t.Run("unknown ordering", func(t *testing.T) {
		if _, err := s.List("", "alphabetical", model.KindTag); err == nil {
			t.Error("expected an error for an unknown ordering")
		}
	})
}

func TestListPatternFilters(t *testing.T) {
	s := testStore(t)
	seedFixture(t, s)

	cases := []struct {
		pattern string
		want    []string
	}{
		{"", []string{"bird", "ocean"}},
		{"^oc", []string{"ocean"}},
		{"ir", []string{"bird"}},
		{"zzz", nil},
	}
	for _, tc := range cases {
		got, err := mustList(s, tc.pattern, OrderByName, model.KindTag)
		if err != nil {
			t.Fatal(err)
		}
		names := termNames(got)
		if len(names) != len(tc.want) {
			t.Errorf("pattern %q: got %v, want %v", tc.pattern, names, tc.want)
			continue
		}
		for i := range names {
			if names[i] != tc.want[i] {
				t.Errorf("pattern %q: got %v, want %v", tc.pattern, names, tc.want)
			}
		}
	}

	if _, err := s.List("[", OrderByName, model.KindTag); err == nil {
		t.Error("expected an error for an invalid pattern")
	}
}

func TestListOtherKinds(t *testing.T) {
	s := testStore(t)
	seedFixture(t, s)

	authors, err := mustList(s, "", OrderByContent, model.KindAuthor)
	if err != nil {
		t.Fatal(err)
	}
	if len(authors) != 2 || authors[0].Name != "Daniel" || authors[0].Count != 3 {
		t.Errorf("authors = %v", authors)
	}

	categories, err := mustList(s, "", OrderByName, model.KindCategory)
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 2 || categories[0].Name != "Essays" {
		t.Errorf("categories = %v", termNames(categories))
	}
}

func mustList(s *Store, pattern, orderBy string, kind model.Kind) ([]model.Term, error) {
	cur, err := s.List(pattern, orderBy, kind)
	if err != nil {
		return nil, err
	}
	return cur.Collect()
}
