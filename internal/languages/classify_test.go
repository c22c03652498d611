package languages

import (
	"strings"
	"testing"
)

// classifyAll 用同一个 inBlock 状态依次分类多行，返回每行结果。
func classifyAll(syntax CommentSyntax, lines ...string) []LineKind {
	inBlock := false
	kinds := make([]LineKind, 0, len(lines))
	for _, line := range lines {
		kinds = append(kinds, syntax.Classify(strings.TrimSpace(line), &inBlock))
	}
	return kinds
}

func assertKinds(t *testing.T, got []LineKind, want ...LineKind) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d kinds, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %s, got %s", i+1, want[i], got[i])
		}
	}
}

func TestClassifyLineComment(t *testing.T) {
	got := classifyAll(cStyle,
		"// header",
		"int x = 1; // trailing",
		"   // indented",
		"x // y",
	)
	assertKinds(t, got, Comment, NotComment, Comment, NotComment)
}

func TestClassifyBlockCommentSpansLines(t *testing.T) {
	got := classifyAll(cStyle,
		"/* start",
		"middle",
		"end */",
		"int y;",
	)
	assertKinds(t, got, Comment, Comment, Comment, NotComment)
}

// TestClassifyBlockEndLineIsComment 验证关闭块注释的那一行整体算注释，即使后面还有代码。
func TestClassifyBlockEndLineIsComment(t *testing.T) {
	got := classifyAll(cStyle,
		"/*",
		"*/ int x;",
		"int y;",
	)
	assertKinds(t, got, Comment, Comment, NotComment)
}

// TestClassifySameLineBlockStaysOpen 验证同一行开闭的块注释不会回到块外。
func TestClassifySameLineBlockStaysOpen(t *testing.T) {
	got := classifyAll(cStyle,
		"/* one line */",
		"int x;",
		"done */",
		"int y;",
	)
	assertKinds(t, got, Comment, Comment, Comment, NotComment)
}

// TestClassifyBlockStartNotAtLineStart 验证块起始只按前缀识别。
func TestClassifyBlockStartNotAtLineStart(t *testing.T) {
	got := classifyAll(cStyle,
		"int x; /* tail",
		"int y;",
	)
	assertKinds(t, got, NotComment, NotComment)
}

func TestClassifyEmptySyntax(t *testing.T) {
	got := classifyAll(noComments, "# hash", "// slash", "/* block */", "")
	assertKinds(t, got, NotComment, NotComment, NotComment, NotComment)
}

func TestClassifyMarkupOnly(t *testing.T) {
	got := classifyAll(markupOnly,
		"<!-- note",
		"still note -->",
		"<p>text</p>",
		"// not a comment",
	)
	assertKinds(t, got, Comment, Comment, NotComment, NotComment)
}

func TestClassifySQLLineAndBlock(t *testing.T) {
	got := classifyAll(sqlStyle,
		"-- header",
		"SELECT 1;",
		"/* block",
		"*/",
		"SELECT 2; -- trailing",
	)
	assertKinds(t, got, Comment, NotComment, Comment, Comment, NotComment)
}

// TestClassifyBlankLine 验证空行在块外不是注释，在块内是注释。
func TestClassifyBlankLine(t *testing.T) {
	got := classifyAll(cStyle, "", "/*", "", "*/", "")
	assertKinds(t, got, NotComment, Comment, Comment, Comment, NotComment)
}

func TestLineKindString(t *testing.T) {
	if Comment.String() != "comment" || NotComment.String() != "not-comment" {
		t.Fatalf("unexpected kind names: %s %s", Comment, NotComment)
	}
}
