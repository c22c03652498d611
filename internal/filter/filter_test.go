package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultExcludes(t *testing.T) {
	f := New(nil, nil)

	for _, name := range []string{
		".git", ".svn", "node_modules", "target", "build", "_build", "builddir",
		"notes.bak", "Cargo.lock", "debug.log", "scratch.tmp",
		"main.go~", "~lockfile", "temp$", "$RECYCLE.BIN",
	} {
		assert.True(t, f.Skip(name), "expected %s to be skipped", name)
	}

	for _, name := range []string{"main.go", "src", "builds", "logs", "git"} {
		assert.False(t, f.Skip(name), "expected %s to be kept", name)
	}
}

func TestExtraExcludes(t *testing.T) {
	f := New([]string{"*.md", " vendor ", ""}, nil)

	assert.True(t, f.Skip("README.md"))
	assert.True(t, f.Skip("vendor"))
	assert.False(t, f.Skip("main.go"))
	assert.Contains(t, f.Excludes(), "vendor")
	assert.NotContains(t, f.Excludes(), "")
}

// TestIncludeRemovesIdenticalExclude 验证与 include 文本相同的 exclude 被移除。
func TestIncludeRemovesIdenticalExclude(t *testing.T) {
	f := New(nil, []string{"build"})

	assert.NotContains(t, f.Excludes(), "build")
	assert.Equal(t, []string{"build"}, f.Includes())
	assert.False(t, f.Skip("build"))
	assert.True(t, f.Skip("target"))
}

// TestIncludeRescuesMatchingName 验证 include 模式可以救回被别的 exclude 命中的名字。
func TestIncludeRescuesMatchingName(t *testing.T) {
	f := New([]string{"*.go"}, []string{"keep_*.go"})

	assert.True(t, f.Skip("main.go"))
	assert.False(t, f.Skip("keep_me.go"))
	// include 不会限制没有被排除的名字。
	assert.False(t, f.Skip("main.rs"))
}

func TestNilFilterKeepsEverything(t *testing.T) {
	var f *Filter
	assert.False(t, f.Skip(".git"))
}

func TestMatch(t *testing.T) {
	assert.True(t, Match("*.go", "main.go"))
	assert.True(t, Match("test_?.py", "test_a.py"))
	assert.True(t, Match("*.{js,ts}", "app.ts"))
	assert.True(t, Match("[ab]*", "alpha"))
	assert.False(t, Match("*.go", "main.rs"))

	// 非法通配符按字面量比较。
	assert.True(t, Match("[abc", "[abc"))
	assert.False(t, Match("[abc", "a"))
}

func TestAccessorsReturnCopies(t *testing.T) {
	f := New([]string{"x"}, []string{"y"})

	excludes := f.Excludes()
	excludes[0] = "changed"
	includes := f.Includes()
	includes[0] = "changed"

	assert.Equal(t, DefaultExcludes[0], f.Excludes()[0])
	assert.Equal(t, "y", f.Includes()[0])
}
