package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewritePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no placeholders", "/items", "/items"},
		{"root", "/", "/"},
		{"single placeholder", "/items/{id}", "/items/:id"},
		{"multiple placeholders", "/users/{userId}/posts/{postId}", "/users/:userId/posts/:postId"},
		{"adjacent segments preserved", "/a/{b}/c/{d}/e", "/a/:b/c/:d/e"},
		{"underscore and digits", "/v2/{item_id2}", "/v2/:item_id2"},
		{"non word placeholder untouched", "/items/{id:int}", "/items/{id:int}"},
		{"empty placeholder untouched", "/items/{}", "/items/{}"},
		{"unbalanced brace untouched", "/items/{id", "/items/{id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewritePath(tt.in))
		})
	}
}
