// Package yamlsize teaches the deepsize engine about yaml.v3 node
// trees. Importing it registers the model:
//
//	import _ "github.com/genc-murat/deepsize/yamlsize"
//
// A decoded *yaml.Node graph is walked recursively: scalar text,
// anchors and comments count as owned strings, Content edges recurse,
// and Alias edges follow the shared anchor target, which the traversal
// context counts once no matter how many aliases refer to it. The
// resolver's well-known "!!" tags are package constants rather than
// owned heap and are skipped outright.
package yamlsize

import (
	"gopkg.in/yaml.v3"

	"github.com/genc-murat/deepsize"
)

func init() {
	deepsize.Register(yaml.Node{}, children)
}

func children(v any, ctx *deepsize.Context) uintptr {
	n := v.(yaml.Node)

	var size uintptr
	if !wellKnownTag(n.Tag) {
		size += deepsize.OfChildren(ctx, n.Tag)
	}
	size += deepsize.OfChildren(ctx, n.Value)
	size += deepsize.OfChildren(ctx, n.Anchor)
	size += deepsize.OfChildren(ctx, n.HeadComment)
	size += deepsize.OfChildren(ctx, n.LineComment)
	size += deepsize.OfChildren(ctx, n.FootComment)
	size += deepsize.OfChildren(ctx, n.Alias)
	size += deepsize.OfChildren(ctx, n.Content)
	return size
}

// wellKnownTag reports whether tag is one of the resolver's standard
// short tags, which point into static data shared by every node that
// carries them.
func wellKnownTag(tag string) bool {
	switch tag {
	case "", "!!null", "!!bool", "!!str", "!!int", "!!float",
		"!!seq", "!!map", "!!timestamp", "!!binary", "!!merge":
		return true
	}
	return false
}
