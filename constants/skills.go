package constants

// SkillSet is the keyword vocabulary, lowercase.
var SkillSet = []string{
	// languages
	"python", "java", "javascript", "typescript", "html", "css", "php", "ruby", "swift",
	"kotlin", "c++", "c#", "go",
	// frameworks
	"react", "vue", "angular", "nodejs", "express", "django", "flask", "laravel",
	"flutter", "react native",
	// data stores
	"mysql", "postgresql", "mongodb", "sqlite", "oracle", "redis", "sql",
	// platforms and tools
	"android studio", "xcode", "aws", "azure", "gcp", "docker", "kubernetes", "jenkins",
	"gitlab", "github", "bitbucket", "terraform", "ansible", "git", "graphql", "rest",
	"linux", "windows server", "macos",
	// design
	"photoshop", "illustrator", "figma", "adobe xd", "canva", "coreldraw", "premiere",
	"after effects",
	// analytics
	"tableau", "power bi", "google analytics", "spss",
	// methodologies and trackers
	"microservices", "agile", "scrum", "jira", "trello", "notion",
}

// SkillSynonyms rewrites variant spellings to the canonical keyword.
// Applied longest phrase first.
var SkillSynonyms = []Synonym{
	{"node.js", "nodejs"},
	{"node js", "nodejs"},
	{"node", "nodejs"},
	{"rest api", "rest"},
	{"restful", "rest"},
	{"c plus plus", "c++"},
	{"c sharp", "c#"},
	{"golang", "go"},
	{"postgres", "postgresql"},
	{"vue.js", "vue"},
	{"vuejs", "vue"},
	{"react.js", "react"},
	{"reactjs", "react"},
	{"google cloud platform", "gcp"},
	{"amazon web services", "aws"},
}

// UpperSkills are rendered fully upper-case instead of title case.
var UpperSkills = map[string]struct{}{
	"c++":  {},
	"c#":   {},
	"aws":  {},
	"gcp":  {},
	"css":  {},
	"html": {},
	"sql":  {},
	"rest": {},
}

// SkillSectionWide headers open a 600-character scan window.
var SkillSectionWide = []string{
	`keahlian`, `keterampilan`, `kemampuan`, `technical\s*skills?`, `skills?`,
}

// SkillSectionNarrow headers open a 400-character scan window.
var SkillSectionNarrow = []string{
	`software`, `tools?`, `teknologi`, `bahasa\s*pemrograman`, `programming\s*languages?`,
}
