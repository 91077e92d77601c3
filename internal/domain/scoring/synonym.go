package scoring

import "strings"

// skillSynonyms maps common aliases to a canonical skill name. Lookup
// happens after lowercasing and whitespace collapsing.
var skillSynonyms = map[string]string{
	"k8s":        "kubernetes",
	"golang":     "go",
	"js":         "javascript",
	"ts":         "typescript",
	"postgres":   "postgresql",
	"psql":       "postgresql",
	"mongo":      "mongodb",
	"gcp":        "google cloud",
	"aws":        "amazon web services",
	"node":       "node.js",
	"nodejs":     "node.js",
	"react.js":   "react",
	"reactjs":    "react",
	"vue.js":     "vue",
	"vuejs":      "vue",
	"ml":         "machine learning",
	"ai":         "machine learning",
	"ci/cd":      "continuous integration",
	"cicd":       "continuous integration",
	"tf":         "terraform",
	"es":         "elasticsearch",
	"c sharp":    "c#",
	"dotnet":     ".net",
	".net core":  ".net",
	"rest api":   "rest",
	"restful":    "rest",
	"microservice": "microservices",
}

// NormalizeSkill canonicalizes a skill name so that "K8s" and
// "Kubernetes" compare equal.
func NormalizeSkill(name string) string {
	s := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), " ")
	if s == "" {
		return ""
	}
	if canonical, ok := skillSynonyms[s]; ok {
		return canonical
	}
	return s
}

var titleNoise = strings.NewReplacer(
	"(", " ", ")", " ", "/", " ", "-", " ", ",", " ", "|", " ", "&", " and ",
)

// NormalizeTitle lowercases a role title and strips punctuation so
// "Sr. Backend Engineer (Go)" and "sr backend engineer go" compare equal.
func NormalizeTitle(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = titleNoise.Replace(s)
	s = strings.ReplaceAll(s, ".", "")
	return strings.Join(strings.Fields(s), " ")
}
