// Package languages 负责语言识别、注释语法解析与逐行注释分类。
package languages

// CommentSyntax 描述一种语言的注释语法。
// 空字符串表示该标记不存在；BlockStart 与 BlockEnd 总是成对出现。
// 三个字段都为空表示“不识别任何注释”（例如纯文本）。
type CommentSyntax struct {
	Line       string `json:"line,omitempty"`
	BlockStart string `json:"block_start,omitempty"`
	BlockEnd   string `json:"block_end,omitempty"`
}

// HasBlock 报告该语法是否定义了块注释。
func (s CommentSyntax) HasBlock() bool {
	return s.BlockStart != "" && s.BlockEnd != ""
}

// IsEmpty 报告该语法是否不识别任何注释。
func (s CommentSyntax) IsEmpty() bool {
	return s == CommentSyntax{}
}

var (
	cStyle     = CommentSyntax{Line: "//", BlockStart: "/*", BlockEnd: "*/"}
	hashStyle  = CommentSyntax{Line: "#"}
	markupOnly = CommentSyntax{BlockStart: "<!--", BlockEnd: "-->"}
	sqlStyle   = CommentSyntax{Line: "--", BlockStart: "/*", BlockEnd: "*/"}
	noComments = CommentSyntax{}
)

// syntaxByLanguage 是语言标识到注释语法的静态映射。
// css 沿用 C 家族的 // 行注释，这与真实 CSS 不符，保持现状。
var syntaxByLanguage = map[string]CommentSyntax{
	"rust":       cStyle,
	"c":          cStyle,
	"cpp":        cStyle,
	"javascript": cStyle,
	"typescript": cStyle,
	"java":       cStyle,
	"php":        cStyle,
	"go":         cStyle,
	"scala":      cStyle,
	"kotlin":     cStyle,
	"jsp":        cStyle,
	"vala":       cStyle,
	"css":        cStyle,
	"python":     hashStyle,
	"shell":      hashStyle,
	"perl":       hashStyle,
	"tcl":        hashStyle,
	"yaml":       hashStyle,
	"config":     hashStyle,
	"html":       markupOnly,
	"xml":        markupOnly,
	"sql":        sqlStyle,
	"batch":      {Line: "REM"},
	"vb":         {Line: "'"},
	"tex":        {Line: "%"},
	"text":       noComments,
}

// SyntaxFor 查询内置表，不做内容推断。
func SyntaxFor(language string) (CommentSyntax, bool) {
	syntax, ok := syntaxByLanguage[language]
	return syntax, ok
}

// Resolve 返回语言对应的注释语法。
// 不在内置表中的语言（任意后缀或 unknown）会读取文件内容进行推断。
func Resolve(language string, path string) CommentSyntax {
	if syntax, ok := syntaxByLanguage[language]; ok {
		return syntax
	}
	return Infer(path)
}
