package wizard

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/nleclerc/dockhand/internal/discover"
)

// Answers collects the wizard's output.
type Answers struct {
	Project      string
	TopologyFile string
	Policy       string
	Root         string
	MaxDepth     int
}

// Run executes the interactive wizard over the detection result and
// returns the user's answers.
func Run(detection DetectionResult, root string) (*Answers, error) {
	answers := &Answers{
		Root:     root,
		MaxDepth: 3,
		Policy:   "merge",
	}

	if cwd, err := filepath.Abs(root); err == nil {
		answers.Project = filepath.Base(cwd)
	}

	var groups []*huh.Group

	if len(detection.Candidates) > 0 {
		// The top-ranked candidate is the default selection.
		options := make([]huh.Option[string], 0, len(detection.Candidates))
		for _, c := range detection.Candidates {
			label := fmt.Sprintf("%s (%d services)", c.RelativePath, len(c.ServiceNames))
			if c.IsPrimary {
				label += " [primary]"
			} else if c.Environment != discover.EnvNone {
				label += fmt.Sprintf(" [%s]", c.Environment)
			}
			options = append(options, huh.NewOption(label, c.Path))
		}
		answers.TopologyFile = detection.Candidates[0].Path

		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which topology file should dockhand manage?").
				Description(fmt.Sprintf("%d compose files found, best match first.", len(detection.Candidates))).
				Options(options...).
				Value(&answers.TopologyFile),
		))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Project name").
			Value(&answers.Project),
		huh.NewSelect[string]().
			Title("How should detected services be combined with your config?").
			Options(
				huh.NewOption("Merge — keep my customizations, add new services", "merge"),
				huh.NewOption("Replace — the topology file is authoritative", "replace"),
			).
			Value(&answers.Policy),
	))

	form := huh.NewForm(groups...)
	if err := form.Run(); err != nil {
		return nil, err
	}

	return answers, nil
}
