package core_test

import (
	"testing"

	"erp-admin/internal/core"

	"github.com/stretchr/testify/assert"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"  padded  ", "padded"},
		{"<b>bold</b>", "bold"},
		{"<script>evil</script>foo", "foo"},
		{"<style>p{color:red}</style>menu-posts", "menu-posts"},
		{"<a href=\"x\">link</a> text", "link text"},
		{"edit.php?post_type=page&amp;x=1", "edit.php?post_type=page&amp;x=1"},
		{"admin.php?page=erp&section=tools", "admin.php?page=erp&section=tools"},
		{"admin.php?page=erp&notice=1", "admin.php?page=erp&notice=1"},
		{"admin.php?page=erp&region=eu", "admin.php?page=erp&region=eu"},
		{"<i>admin.php?page=erp&section=tools</i>", "admin.php?page=erp&section=tools"},
		{"<img src=x onerror=alert(1)>", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, core.StripTags(tt.in), "input %q", tt.in)
	}
}
