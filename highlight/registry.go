package highlight

// Fixed allow-lists for the language and style tags accepted on
// snippets. Initialized once at process start; write-path validation
// checks membership here so an unregistered tag never reaches the
// renderer.

const (
	DefaultLanguage = "python"
	DefaultStyle    = "friendly"
)

var Languages = []string{
	"bash",
	"c",
	"cpp",
	"csharp",
	"css",
	"go",
	"html",
	"java",
	"javascript",
	"json",
	"kotlin",
	"markdown",
	"perl",
	"php",
	"python",
	"ruby",
	"rust",
	"sql",
	"swift",
	"typescript",
	"xml",
	"yaml",
}

var Styles = []string{
	"autumn",
	"borland",
	"colorful",
	"dracula",
	"emacs",
	"friendly",
	"fruity",
	"github",
	"monokai",
	"native",
	"pastie",
	"perldoc",
	"tango",
	"trac",
	"vim",
	"vs",
	"xcode",
}

var (
	languageSet = make(map[string]bool, len(Languages))
	styleSet    = make(map[string]bool, len(Styles))
)

func init() {
	for _, l := range Languages {
		languageSet[l] = true
	}
	for _, s := range Styles {
		styleSet[s] = true
	}
}

func SupportedLanguage(tag string) bool {
	return languageSet[tag]
}

func SupportedStyle(tag string) bool {
	return styleSet[tag]
}
