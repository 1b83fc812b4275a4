package model

import (
	"strings"
	"testing"

	"book-catalog/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseID(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePageAndEffectivePage(t *testing.T) {
	page, err := ParsePage("")
	require.NoError(t, err)
	assert.Equal(t, 0, EffectivePage(page))

	page, err = ParsePage("3")
	require.NoError(t, err)
	assert.Equal(t, 2, EffectivePage(page))

	page, err = ParsePage("-5")
	require.NoError(t, err)
	assert.Equal(t, 0, EffectivePage(page))

	assert.Equal(t, 0, EffectivePage(1))

	_, err = ParsePage("two")
	assert.ErrorIs(t, err, ErrInvalidPage)
}

func TestBookRules(t *testing.T) {
	valid := func() map[string]interface{} {
		return map[string]interface{}{
			"title":       "Dune",
			"price":       9.99,
			"author_name": "Frank Herbert",
		}
	}

	tests := []struct {
		name    string
		mutate  func(m map[string]interface{})
		wantMsg string
	}{
		{"valid", func(m map[string]interface{}) {}, ""},
		{"valid with description", func(m map[string]interface{}) { m["description"] = "Spice" }, ""},
		{"null description ok", func(m map[string]interface{}) { m["description"] = nil }, ""},
		{"missing title", func(m map[string]interface{}) { delete(m, "title") }, "The field title is missing."},
		{"negative price", func(m map[string]interface{}) { m["price"] = -1.0 }, "The price parameter must be greater than or equal to 0."},
		{"numeric author", func(m map[string]interface{}) { m["author_name"] = 5.0 }, "The author_name parameter must be a string."},
		{"null author", func(m map[string]interface{}) { m["author_name"] = nil }, "The author_name parameter cannot be null."},
		{"long author", func(m map[string]interface{}) { m["author_name"] = strings.Repeat("a", 101) }, "The author_name parameter cannot be longer than 100 characters."},
		{"long description", func(m map[string]interface{}) { m["description"] = strings.Repeat("d", 256) }, "The description parameter cannot be longer than 255 characters."},
		{"title checked before price", func(m map[string]interface{}) { m["title"] = 1.0; m["price"] = "x" }, "The title parameter must be a string."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid()
			tt.mutate(input)
			err := Rules.Validate(input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, apperror.From(err).Message)
		})
	}
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "books:detail:12", DetailCacheKey(12))
	assert.Equal(t, "books:list:0:", ListCacheKey(0, ""))
	assert.Equal(t, "books:list:2:Frank Herbert", ListCacheKey(2, "Frank Herbert"))
}

func TestBookPatchIsEmpty(t *testing.T) {
	assert.True(t, BookPatch{}.IsEmpty())
	title := "x"
	assert.False(t, BookPatch{Title: &title}.IsEmpty())
}
