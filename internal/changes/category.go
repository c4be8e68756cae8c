package changes

import (
	"path"
	"strings"

	"github.com/aezell/branchkit/internal/model"
)

// categoryRule matches a lower-cased, slash-separated path.
type categoryRule struct {
	category model.Category
	match    func(p, base, ext string) bool
}

// categoryRules is evaluated in order; the first match wins.
var categoryRules = []categoryRule{
	{model.CategoryTest, isTestPath},
	{model.CategoryDocumentation, isDocPath},
	{model.CategoryTooling, isToolingPath},
	{model.CategoryConfiguration, isConfigPath},
	{model.CategoryAsset, isAssetPath},
	{model.CategoryPresentation, isPresentationPath},
	{model.CategoryDomainLogic, isDomainPath},
}

// Categorize assigns a category to a path.
func Categorize(p string) model.Category {
	p = strings.ToLower(strings.ReplaceAll(p, "\\", "/"))
	base := path.Base(p)
	ext := path.Ext(base)
	for _, r := range categoryRules {
		if r.match(p, base, ext) {
			return r.category
		}
	}
	return model.CategoryOther
}

func hasDir(p string, dirs ...string) bool {
	for _, d := range dirs {
		if strings.HasPrefix(p, d+"/") || strings.Contains(p, "/"+d+"/") {
			return true
		}
	}
	return false
}

func oneOf(s string, set ...string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

func isTestPath(p, base, ext string) bool {
	if hasDir(p, "test", "tests", "spec", "__tests__", "testdata") {
		return true
	}
	return strings.Contains(base, "_test.") ||
		strings.Contains(base, "_spec.") ||
		strings.Contains(base, ".test.") ||
		strings.Contains(base, ".spec.") ||
		strings.HasPrefix(base, "test_")
}

func isDocPath(p, base, ext string) bool {
	if hasDir(p, "docs", "doc") {
		return true
	}
	if oneOf(ext, ".md", ".markdown", ".rst", ".adoc") {
		return true
	}
	return strings.HasPrefix(base, "readme") ||
		strings.HasPrefix(base, "changelog") ||
		base == "license"
}

func isToolingPath(p, base, ext string) bool {
	if hasDir(p, "scripts", "script", "bin", ".github", ".husky", "tools") {
		return true
	}
	return oneOf(base, "makefile", "rakefile", "dockerfile", "justfile", ".gitignore", ".gitattributes") ||
		ext == ".sh"
}

func isConfigPath(p, base, ext string) bool {
	if hasDir(p, "config", "configs", "deploy") {
		return true
	}
	if oneOf(ext, ".yml", ".yaml", ".json", ".toml", ".ini", ".env", ".lock") {
		return true
	}
	return oneOf(base, "gemfile", "go.mod", "go.sum", ".env", ".editorconfig", ".rubocop.yml")
}

func isAssetPath(p, base, ext string) bool {
	if hasDir(p, "assets", "static", "public", "images", "fonts") {
		return true
	}
	return oneOf(ext, ".css", ".scss", ".sass", ".less",
		".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".webp",
		".woff", ".woff2", ".ttf", ".eot")
}

func isPresentationPath(p, base, ext string) bool {
	if hasDir(p, "views", "templates", "components", "layouts", "ui", "tui") {
		return true
	}
	return oneOf(ext, ".erb", ".haml", ".slim", ".html", ".tmpl", ".jsx", ".tsx", ".vue", ".svelte")
}

func isDomainPath(p, base, ext string) bool {
	if hasDir(p, "models", "controllers", "services", "lib", "internal", "pkg", "app", "src", "db") {
		return true
	}
	return oneOf(ext, ".go", ".rb", ".py", ".js", ".ts", ".java", ".kt", ".rs", ".ex", ".exs", ".php", ".cs", ".sql")
}

// Describe returns a short phrase describing a change in category c.
func Describe(c model.Category) string {
	switch c {
	case model.CategoryDomainLogic:
		return "business logic change"
	case model.CategoryPresentation:
		return "UI/view change"
	case model.CategoryTest:
		return "test coverage"
	case model.CategoryDocumentation:
		return "documentation update"
	case model.CategoryConfiguration:
		return "configuration change"
	case model.CategoryAsset:
		return "asset or style change"
	case model.CategoryTooling:
		return "tooling/automation change"
	default:
		return "miscellaneous change"
	}
}
