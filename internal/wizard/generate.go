package wizard

import (
	"strings"

	yamlv3 "gopkg.in/yaml.v3"
)

type generatedConfig struct {
	Project      string `yaml:"project"`
	Root         string `yaml:"root"`
	MaxDepth     int    `yaml:"max_depth"`
	TopologyFile string `yaml:"topology_file,omitempty"`
	Policy       string `yaml:"policy"`
}

// GenerateConfig renders the wizard answers as dockhand.yml content.
func GenerateConfig(a Answers) (string, error) {
	cfg := generatedConfig{
		Project:      a.Project,
		Root:         a.Root,
		MaxDepth:     a.MaxDepth,
		TopologyFile: a.TopologyFile,
		Policy:       a.Policy,
	}

	out, err := yamlv3.Marshal(&cfg)
	if err != nil {
		return "", err
	}

	header := "# dockhand configuration\n# generated by 'dockhand init'\n"
	return header + strings.TrimLeft(string(out), "\n"), nil
}
