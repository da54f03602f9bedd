package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nleclerc/dockhand/internal/topology"
)

// EnvironmentTag marks which environment a variant topology file targets.
type EnvironmentTag string

const (
	EnvNone     EnvironmentTag = ""
	EnvDev      EnvironmentTag = "dev"
	EnvProd     EnvironmentTag = "prod"
	EnvTest     EnvironmentTag = "test"
	EnvStaging  EnvironmentTag = "staging"
	EnvLocal    EnvironmentTag = "local"
	EnvOverride EnvironmentTag = "override"
)

// envTagPatterns maps filename substrings to tags; scanned in order,
// first match wins.
var envTagPatterns = []struct {
	token string
	tag   EnvironmentTag
}{
	{"dev", EnvDev},
	{"prod", EnvProd},
	{"test", EnvTest},
	{"staging", EnvStaging},
	{"local", EnvLocal},
	{"override", EnvOverride},
}

// Scoring penalties. Lower total is better: shallow beats deep, primary
// beats variant, declared services beat none, more services break ties.
const (
	penaltyPerDepthLevel = 10
	penaltyVariantName   = 5
	penaltyNoServices    = 20
)

// Candidate is one discovered topology file with derived metadata.
type Candidate struct {
	Path          string
	RelativePath  string
	Depth         int
	SizeBytes     int64
	ModifiedAt    time.Time
	Environment   EnvironmentTag
	IsPrimary     bool
	ServiceNames  []string
	PriorityScore int
}

// Classify builds a candidate for every path and returns them ranked,
// best first. A file that fails to stat or parse still yields a
// candidate so callers can report its existence.
func Classify(root string, paths []string) []Candidate {
	candidates := make([]Candidate, 0, len(paths))
	for _, p := range paths {
		candidates = append(candidates, ClassifyOne(root, p))
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].PriorityScore != candidates[j].PriorityScore {
			return candidates[i].PriorityScore < candidates[j].PriorityScore
		}
		return candidates[i].RelativePath < candidates[j].RelativePath
	})
	return candidates
}

// ClassifyOne derives all candidate metadata for a single path.
func ClassifyOne(root, path string) Candidate {
	c := Candidate{Path: path}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	c.RelativePath = filepath.ToSlash(rel)
	c.Depth = strings.Count(c.RelativePath, "/")

	if info, err := os.Stat(path); err == nil {
		c.SizeBytes = info.Size()
		c.ModifiedAt = info.ModTime()
	}

	name := filepath.Base(path)
	c.IsPrimary = isPrimaryFilename(name)
	if !c.IsPrimary {
		c.Environment = classifyEnvironment(name)
	}

	// Parse errors surface as an empty name list, never as a failure.
	c.ServiceNames = topology.ServiceNames(path)

	c.PriorityScore = Score(c.Depth, c.IsPrimary, len(c.ServiceNames))
	return c
}

// Score computes the additive penalty score for a candidate's derived
// attributes. Pure so ranking behavior is testable without a filesystem.
func Score(depth int, isPrimary bool, serviceCount int) int {
	score := penaltyPerDepthLevel * depth
	if !isPrimary {
		score += penaltyVariantName
	}
	if serviceCount == 0 {
		score += penaltyNoServices
	}
	return score - serviceCount
}

func classifyEnvironment(filename string) EnvironmentTag {
	lower := strings.ToLower(filename)
	for _, p := range envTagPatterns {
		if strings.Contains(lower, p.token) {
			return p.tag
		}
	}
	return EnvNone
}
