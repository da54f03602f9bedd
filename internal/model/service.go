package model

// ServiceDescriptor is the internal record of one service's known
// configuration. Name is the unique key within an inventory.
type ServiceDescriptor struct {
	Name               string            `yaml:"name" mapstructure:"name"`
	Port               int               `yaml:"port,omitempty" mapstructure:"port"`
	Description        string            `yaml:"description,omitempty" mapstructure:"description"`
	HealthCheckEnabled bool              `yaml:"health_check,omitempty" mapstructure:"health_check"`
	Volumes            []string          `yaml:"volumes,omitempty" mapstructure:"volumes"`
	Environment        map[string]string `yaml:"environment,omitempty" mapstructure:"environment"`
	Detected           bool              `yaml:"detected" mapstructure:"detected"`
}

// Inventory maps service names to their descriptors.
type Inventory map[string]ServiceDescriptor

// Clone returns a deep copy so reconciliation never aliases caller state.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for name, svc := range inv {
		out[name] = svc.clone()
	}
	return out
}

func (s ServiceDescriptor) clone() ServiceDescriptor {
	c := s
	if s.Volumes != nil {
		c.Volumes = append([]string(nil), s.Volumes...)
	}
	if s.Environment != nil {
		c.Environment = make(map[string]string, len(s.Environment))
		for k, v := range s.Environment {
			c.Environment[k] = v
		}
	}
	return c
}
