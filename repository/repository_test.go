package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPaginationDefaults(t *testing.T) {
	stages := paginationStages(0, 0)
	if len(stages) != 2 {
		t.Fatalf("expected skip and limit stages, got %d", len(stages))
	}
	if got := stages[0][0].Value.(int64); got != 0 {
		t.Fatalf("expected skip 0 for default page, got %d", got)
	}
	if got := stages[1][0].Value.(int64); got != 10 {
		t.Fatalf("expected default limit 10, got %d", got)
	}
}

func TestPaginationSkipsWholePages(t *testing.T) {
	stages := paginationStages(3, 25)
	if got := stages[0][0].Value.(int64); got != 50 {
		t.Fatalf("expected skip 50 for page 3 / limit 25, got %d", got)
	}
	if got := stages[1][0].Value.(int64); got != 25 {
		t.Fatalf("expected limit 25, got %d", got)
	}
}

func TestPaginationNegativeValues(t *testing.T) {
	stages := paginationStages(-2, -7)
	if got := stages[0][0].Value.(int64); got != 0 {
		t.Fatalf("expected skip 0, got %d", got)
	}
	if got := stages[1][0].Value.(int64); got != 10 {
		t.Fatalf("expected limit 10, got %d", got)
	}
}

func TestKeywordRegexEscapesMeta(t *testing.T) {
	d := keywordRegex("a.c*")
	if d[0].Value.(string) != `a\.c\*` {
		t.Fatalf("expected escaped pattern, got %q", d[0].Value)
	}
	if d[1].Value.(string) != "i" {
		t.Fatalf("expected case-insensitive option")
	}
}

func TestKeywordRegexEmptyMatchesAll(t *testing.T) {
	d := keywordRegex("")
	if d[0].Value.(string) != "" {
		t.Fatalf("expected empty pattern, got %q", d[0].Value)
	}
}

func TestExactRegexAnchors(t *testing.T) {
	d := exactRegex("Mix+")
	if d[0].Value.(string) != `^Mix\+$` {
		t.Fatalf("expected anchored escaped pattern, got %q", d[0].Value)
	}
}

func TestExactRegexShape(t *testing.T) {
	d := exactRegex("name")
	want := bson.D{
		{Key: "$regex", Value: "^name$"},
		{Key: "$options", Value: "i"},
	}
	if len(d) != len(want) || d[0].Key != want[0].Key || d[1].Key != want[1].Key {
		t.Fatalf("unexpected filter shape: %+v", d)
	}
}
