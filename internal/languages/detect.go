package languages

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Unknown 是既没有后缀也没有 shebang 时的语言标识。
const Unknown = "unknown"

// interpreterProbe 是一条 shebang 探测规则。
type interpreterProbe struct {
	token    string
	language string
}

// shebangProbes 按顺序做子串匹配，命中第一条即返回。
// sh 是 bash/zsh 的子串，顺序决定结果，不能改成精确匹配解释器名。
var shebangProbes = []interpreterProbe{
	{"python", "python"},
	{"perl", "perl"},
	{"ruby", "ruby"},
	{"bash", "shell"},
	{"sh", "shell"},
	{"zsh", "shell"},
	{"node", "javascript"},
	{"php", "php"},
	{"lua", "lua"},
	{"awk", "awk"},
	{"tcl", "tcl"},
}

// languageByExt 是小写后缀（不含点号）到语言标识的映射。
var languageByExt = map[string]string{
	"rs":     "rust",
	"c":      "c",
	"h":      "c",
	"cpp":    "cpp",
	"cxx":    "cpp",
	"cc":     "cpp",
	"hpp":    "cpp",
	"hxx":    "cpp",
	"py":     "python",
	"python": "python",
	"js":     "javascript",
	"ts":     "typescript",
	"java":   "java",
	"sh":     "shell",
	"bash":   "shell",
	"zsh":    "shell",
	"env":    "shell",
	"css":    "css",
	"scss":   "css",
	"html":   "html",
	"htm":    "html",
	"xml":    "xml",
	"xsl":    "xml",
	"xslt":   "xml",
	"xsd":    "xml",
	"dtd":    "xml",
	"xq":     "xml",
	"php":    "php",
	"pl":     "perl",
	"pm":     "perl",
	"go":     "go",
	"scala":  "scala",
	"kt":     "kotlin",
	"kts":    "kotlin",
	"sql":    "sql",
	"bat":    "batch",
	"bas":    "vb",
	"cls":    "vb",
	"ctl":    "vb",
	"frm":    "vb",
	"jsp":    "jsp",
	"vala":   "vala",
	"sty":    "tex",
	"tcl":    "tcl",
	"txt":    "text",
	"yaml":   "yaml",
	"yml":    "yaml",
	"conf":   "config",
	"ini":    "config",
}

// Detect 根据 shebang 或文件后缀识别语言。
// 优先级：shebang > 后缀表 > 原样后缀 > unknown。
// 文件打不开时静默跳过 shebang 探测。
func Detect(path string) string {
	if language, ok := detectShebang(path); ok {
		return language
	}
	return DetectByExtension(path)
}

// DetectByExtension 只看后缀，不读取文件内容。
func DetectByExtension(path string) string {
	ext := extensionOf(path)
	if ext == "" {
		return Unknown
	}
	if language, ok := languageByExt[ext]; ok {
		return language
	}
	return ext
}

// DetectShebangLine 对一行文本做 shebang 探测。
func DetectShebangLine(line string) (string, bool) {
	if !strings.HasPrefix(line, "#!") {
		return "", false
	}
	for _, probe := range shebangProbes {
		if strings.Contains(line, probe.token) {
			return probe.language, true
		}
	}
	return "", false
}

func detectShebang(path string) (string, bool) {
	file, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer file.Close()

	firstLine, err := bufio.NewReader(file).ReadString('\n')
	if err != nil && firstLine == "" {
		return "", false
	}
	return DetectShebangLine(firstLine)
}

// extensionOf 返回小写后缀（不含点号）。
// 以点开头且没有其他点的文件名（如 .bashrc）视为没有后缀。
func extensionOf(path string) string {
	base := filepath.Base(path)
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}
