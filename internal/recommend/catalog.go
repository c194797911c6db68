package recommend

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ProjectFallback = "Explore open-source ideas on GitHub"
	RoadmapFallback = "Explore learning paths on LinkedIn Learning or Coursera"
)

var defaultProjects = map[string][]string{
	"Data Scientist":     {"Loan Default Predictor", "Customer Segmentation", "Time Series Forecasting"},
	"Frontend Developer": {"Portfolio Website", "Responsive Blog UI", "E-commerce Landing Page"},
	"Backend Developer":  {"REST API with Spring Boot", "Authentication System", "Inventory Manager"},
	"Software Developer": {"Sorting Visualizer", "Quiz App", "Chat Application"},
	"Data Analyst":       {"Sales Dashboard", "Excel Automation", "Survey Insights"},
	"AI Engineer":        {"Chatbot with NLP", "Emotion Detection", "AI Resume Screener"},
	"Generalist":         {"Task Manager", "Weather App", "To-Do List with CRUD"},
}

var defaultRoadmaps = map[string][]string{
	"Data Scientist": {
		"Learn Python, NumPy, Pandas",
		"Master data visualization (Matplotlib, Seaborn)",
		"Study statistics and machine learning (scikit-learn)",
		"Build projects: Loan Predictor, Customer Segmentation",
		"Take courses: Coursera, Kaggle, Analytics Vidhya",
		"Apply for internships or freelance gigs",
	},
	"Backend Developer": {
		"Learn Python, Java, or Node.js",
		"Understand REST APIs and databases (SQL, MongoDB)",
		"Build projects: Auth System, Inventory Manager",
		"Explore frameworks: Django, Spring Boot, Express",
		"Take backend-focused courses (Udemy, freeCodeCamp)",
		"Contribute to open-source or backend internships",
	},
}

// Catalog maps career labels to suggested projects and a learning roadmap.
// It is read-only once built.
type Catalog struct {
	projects map[string][]string
	roadmaps map[string][]string
}

// catalogFile is the YAML layout accepted by LoadCatalog.
type catalogFile struct {
	Projects map[string][]string `yaml:"projects"`
	Roadmaps map[string][]string `yaml:"roadmaps"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		projects: cloneLists(defaultProjects),
		roadmaps: cloneLists(defaultRoadmaps),
	}
}

// LoadCatalog returns the built-in catalog with entries from the YAML file at path added or replaced.
// An empty path returns the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	c := DefaultCatalog()
	if strings.TrimSpace(path) == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := mergeLists(c.projects, file.Projects, "projects"); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	if err := mergeLists(c.roadmaps, file.Roadmaps, "roadmaps"); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Lookup returns copies of the project and roadmap lists for career. Each list falls back on its own
// when the career has no entry, so both are always non-empty.
func (c *Catalog) Lookup(career string) (projects []string, roadmap []string) {
	if p, ok := c.projects[career]; ok {
		projects = append([]string(nil), p...)
	} else {
		projects = []string{ProjectFallback}
	}
	if r, ok := c.roadmaps[career]; ok {
		roadmap = append([]string(nil), r...)
	} else {
		roadmap = []string{RoadmapFallback}
	}
	return projects, roadmap
}

// Known reports whether career has its own projects or roadmap.
func (c *Catalog) Known(career string) bool {
	_, p := c.projects[career]
	_, r := c.roadmaps[career]
	return p || r
}

// Careers lists every career with at least one entry, sorted.
func (c *Catalog) Careers() []string {
	seen := map[string]struct{}{}
	for k := range c.projects {
		seen[k] = struct{}{}
	}
	for k := range c.roadmaps {
		seen[k] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func mergeLists(dst, src map[string][]string, field string) error {
	for career, items := range src {
		career = strings.TrimSpace(career)
		if career == "" {
			return fmt.Errorf("%s: empty career name", field)
		}
		cleaned := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				cleaned = append(cleaned, item)
			}
		}
		if len(cleaned) == 0 {
			return fmt.Errorf("%s: %q has no entries", field, career)
		}
		dst[career] = cleaned
	}
	return nil
}

func cloneLists(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}
