package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses whitespace and strips punctuation", input: "Senior  Backend Engineer!!", want: "senior-backend-engineer"},
		{name: "keeps existing hyphens", input: "Full-Stack Developer", want: "full-stack-developer"},
		{name: "tabs and newlines", input: "Data\t\nScientist", want: "data-scientist"},
		{name: "digits survive", input: "Go 1.22 Expert", want: "go-122-expert"},
		{name: "accents folded", input: "Café Développeur", want: "cafe-developpeur"},
		{name: "trims outer whitespace", input: "  Acme Corp  ", want: "acme-corp"},
		{name: "only symbols", input: "!!!", want: ""},
		{name: "japanese title kept", input: "ソフトウェアエンジニア", want: "ソフトウェアエンジニア"},
		{name: "cyrillic lowercased", input: "Старший Разработчик", want: "старший-разработчик"},
		{name: "mixed scripts", input: "Ingénieur ソフト 2", want: "ingenieur-ソフト-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestWindow(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	assert.Equal(t, []int{0, 1, 2}, Window(items, 0, 3))
	assert.Equal(t, []int{8, 9}, Window(items, 8, 5))
	assert.Equal(t, []int{}, Window(items, 10, 5))
	assert.Equal(t, []int{}, Window(items, 3, 0))
	assert.Equal(t, []int{0, 1}, Window(items, -4, 2))
}

func TestWindowIsContiguousSubsequence(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	for offset := 0; offset <= 30; offset++ {
		for limit := 0; limit <= 30; limit++ {
			got := Window(items, offset, limit)
			for i, v := range got {
				assert.Equal(t, offset+i, v, "offset=%d limit=%d", offset, limit)
			}
			assert.LessOrEqual(t, len(got), limit)
		}
	}
}

func TestWindowDoesNotAlias(t *testing.T) {
	items := []string{"a", "b", "c"}
	got := Window(items, 0, 2)
	got[0] = "z"
	assert.Equal(t, "a", items[0])
}

func TestClampWindow(t *testing.T) {
	offset, limit := ClampWindow(-1, 0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, DefaultLimit, limit)

	_, limit = ClampWindow(0, 500)
	assert.Equal(t, MaxLimit, limit)

	_, limit = ClampWindow(0, 100)
	assert.Equal(t, 100, limit)
	_, limit = ClampWindow(0, 101)
	assert.Equal(t, 100, limit)
}

func TestPaginateSlice(t *testing.T) {
	all := []string{"a", "b", "c", "d", "e"}
	page := PaginateSlice(all, PaginationOptions{Page: 2, PageSize: 2})

	assert.Equal(t, []string{"c", "d"}, page.Items)
	assert.Equal(t, 5, page.Page.Total)
	assert.Equal(t, 3, page.Page.Pages)
	assert.False(t, page.Empty)
}

func TestEmail(t *testing.T) {
	assert.Equal(t, Email("ada@example.com"), Email("  Ada@Example.COM ").Normalize())
	assert.True(t, Email("a@b.co").IsValid())
	assert.False(t, Email("nope").IsValid())
	assert.False(t, Email("@x.io").IsValid())
}

func TestActor(t *testing.T) {
	anon := Actor{}
	assert.False(t, anon.Owns(""))
	assert.False(t, anon.IsExternal(""))

	a := Actor{UserID: "u-1", ExternalID: "ext-1"}
	assert.True(t, a.Owns("u-1"))
	assert.False(t, a.Owns("u-2"))
	assert.True(t, a.IsExternal("ext-1"))

	admin := Actor{Admin: true}
	assert.True(t, admin.Owns("u-2"))
	assert.True(t, admin.IsExternal("ext-2"))
}
