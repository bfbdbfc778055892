package web

import (
	"io/fs"
	"testing"
)

func TestAssets(t *testing.T) {
	for _, name := range []string{"index.html", "js/main.js", "css/style.css"} {
		if _, err := fs.Stat(Assets(), name); err != nil {
			t.Errorf("missing embedded asset %s: %v", name, err)
		}
	}
}
