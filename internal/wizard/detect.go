package wizard

import (
	"os"
	"os/exec"

	"github.com/nleclerc/dockhand/internal/discover"
)

// DetectionResult holds what was auto-detected on the system.
type DetectionResult struct {
	ComposePlugin     bool // docker CLI with compose plugin
	ComposeStandalone bool // legacy docker-compose binary
	Candidates        []discover.Candidate
}

// Detector abstracts binary lookups for testing.
type Detector interface {
	LookPath(name string) (string, error)
}

// OSDetector uses the real OS for detection.
type OSDetector struct{}

func (OSDetector) LookPath(name string) (string, error) { return exec.LookPath(name) }

// Detect scans the environment: which compose binary is available, and
// which topology files exist under root.
func Detect(d Detector, root string, maxDepth int) DetectionResult {
	if d == nil {
		d = OSDetector{}
	}

	result := DetectionResult{}

	if _, err := d.LookPath("docker"); err == nil {
		result.ComposePlugin = true
	}
	if _, err := d.LookPath("docker-compose"); err == nil {
		result.ComposeStandalone = true
	}

	if root == "" {
		root, _ = os.Getwd()
	}
	paths, err := discover.Walk(root, maxDepth, nil)
	if err == nil {
		result.Candidates = discover.Classify(root, paths)
	}

	return result
}
