package taxonomy

var defaultCategories = []Category{
	{Name: "programming_languages", Skills: []string{
		"python", "javascript", "java", "c++", "c#", "ruby", "php", "swift", "kotlin", "go", "rust",
		"typescript", "r", "matlab", "scala", "perl", "shell", "bash",
	}},
	{Name: "web_frameworks", Skills: []string{
		"flask", "django", "fastapi", "express", "react", "angular", "vue", "spring", "laravel",
		"asp.net", "rails", "next.js", "nuxt.js", "svelte",
	}},
	{Name: "databases", Skills: []string{
		"postgresql", "mongodb", "mysql", "sqlite", "oracle", "sql server", "redis", "cassandra",
		"elasticsearch", "neo4j", "dynamodb", "firebase",
	}},
	{Name: "cloud_platforms", Skills: []string{
		"aws", "azure", "gcp", "google cloud", "digital ocean", "heroku", "ibm cloud",
		"alibaba cloud", "oracle cloud",
	}},
	{Name: "devops_tools", Skills: []string{
		"docker", "kubernetes", "jenkins", "gitlab", "github actions", "terraform", "ansible",
		"prometheus", "grafana", "nagios", "splunk", "elk stack",
	}},
	{Name: "version_control", Skills: []string{
		"git", "svn", "mercurial", "bitbucket", "github", "gitlab",
	}},
	{Name: "api_technologies", Skills: []string{
		"rest", "graphql", "soap", "grpc", "microservices", "api gateway", "swagger",
		"openapi", "postman",
	}},
	{Name: "ai_ml", Skills: []string{
		"machine learning", "deep learning", "nlp", "computer vision", "tensorflow",
		"pytorch", "scikit-learn", "keras", "opencv", "nltk", "spacy", "bert", "gpt",
		"transformers", "reinforcement learning", "data science",
	}},
	{Name: "testing", Skills: []string{
		"unit testing", "integration testing", "e2e testing", "jest", "pytest",
		"selenium", "cypress", "junit", "mockito",
	}},
	{Name: "other_skills", Skills: []string{
		"agile", "scrum", "ci/cd", "tdd", "bdd", "microservices", "serverless",
		"restful apis", "graphql", "websockets", "oauth", "jwt", "oauth2",
	}},
}

// Checked in this order; an expansion is added at most once.
var defaultAbbreviations = []Abbreviation{
	{Short: "ml", Expanded: "machine learning"},
	{Short: "ai", Expanded: "artificial intelligence"},
	{Short: "js", Expanded: "javascript"},
	{Short: "ts", Expanded: "typescript"},
	{Short: "py", Expanded: "python"},
	{Short: "aws", Expanded: "amazon web services"},
	{Short: "gcp", Expanded: "google cloud platform"},
	{Short: "ci/cd", Expanded: "continuous integration/continuous deployment"},
	{Short: "e2e", Expanded: "end to end"},
	{Short: "api", Expanded: "application programming interface"},
	{Short: "rest", Expanded: "representational state transfer"},
	{Short: "sql", Expanded: "structured query language"},
	{Short: "nosql", Expanded: "not only sql"},
}
