// Package topology parses declarative topology files into the service
// inventory model.
package topology

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/compose-spec/compose-go/v2/cli"
	composetypes "github.com/compose-spec/compose-go/v2/types"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/nleclerc/dockhand/internal/model"
)

// Description labels consulted in order when building a descriptor.
var descriptionLabels = []string{"dockhand.description", "org.opencontainers.image.description", "description"}

// ServiceNames returns the service keys declared in the file, in
// declaration order. Any read or parse failure yields an empty list;
// a malformed file is still a discovery candidate, just an empty one.
func ServiceNames(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yamlv3.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "services" {
			continue
		}
		services := root.Content[i+1]
		if services.Kind != yamlv3.MappingNode {
			return nil
		}
		names := make([]string, 0, len(services.Content)/2)
		for j := 0; j < len(services.Content); j += 2 {
			names = append(names, services.Content[j].Value)
		}
		return names
	}
	return nil
}

// ParseFile parses a topology file into a service inventory. The
// compose loader is tried first; on failure a raw YAML parse recovers
// what it can, so loosely written files still yield services.
func ParseFile(path string) (model.Inventory, error) {
	ctx := context.Background()

	opts, err := cli.NewProjectOptions(
		[]string{path},
		cli.WithDotEnv,
		cli.WithInterpolation(false),
	)
	if err != nil {
		return nil, fmt.Errorf("project options: %w", err)
	}

	project, err := cli.ProjectFromOptions(ctx, opts)
	if err != nil {
		return parseFallback(path)
	}

	return projectToInventory(project), nil
}

func projectToInventory(project *composetypes.Project) model.Inventory {
	inv := make(model.Inventory, len(project.Services))

	for _, svc := range project.Services {
		desc := model.ServiceDescriptor{
			Name:     svc.Name,
			Detected: true,
		}

		for _, p := range svc.Ports {
			if host, err := strconv.Atoi(p.Published); err == nil && host > 0 {
				desc.Port = host
				break
			}
		}

		for _, label := range descriptionLabels {
			if v, ok := svc.Labels[label]; ok && v != "" {
				desc.Description = v
				break
			}
		}
		if desc.Description == "" && svc.Image != "" {
			desc.Description = svc.Image
		}

		desc.HealthCheckEnabled = svc.HealthCheck != nil && !svc.HealthCheck.Disable

		for _, v := range svc.Volumes {
			if v.Target == "" {
				desc.Volumes = append(desc.Volumes, v.Source)
				continue
			}
			desc.Volumes = append(desc.Volumes, v.Source+":"+v.Target)
		}

		if len(svc.Environment) > 0 {
			desc.Environment = make(map[string]string, len(svc.Environment))
			for k, v := range svc.Environment {
				if v == nil {
					desc.Environment[k] = ""
					continue
				}
				desc.Environment[k] = *v
			}
		}

		inv[desc.Name] = desc
	}

	return inv
}

// parseFallback recovers services from raw YAML when the compose loader
// rejects the file.
func parseFallback(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := yamlv3.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}

	servicesRaw, ok := raw["services"]
	if !ok {
		return model.Inventory{}, nil
	}
	servicesMap, ok := servicesRaw.(map[string]interface{})
	if !ok {
		return model.Inventory{}, nil
	}

	inv := make(model.Inventory, len(servicesMap))
	for name, svcData := range servicesMap {
		svcMap, ok := svcData.(map[string]interface{})
		if !ok {
			continue
		}

		desc := model.ServiceDescriptor{
			Name:        name,
			Description: coerceString(svcMap["image"]),
			Detected:    true,
		}

		if portsRaw, ok := svcMap["ports"].([]interface{}); ok {
			for _, p := range portsRaw {
				pm := model.ParsePortMapping(coerceString(p))
				if pm.HostPort > 0 {
					desc.Port = pm.HostPort
					break
				}
			}
		}

		if _, ok := svcMap["healthcheck"]; ok {
			desc.HealthCheckEnabled = true
		}

		if volsRaw, ok := svcMap["volumes"].([]interface{}); ok {
			for _, v := range volsRaw {
				desc.Volumes = append(desc.Volumes, coerceString(v))
			}
		}

		desc.Environment = coerceEnvironment(svcMap["environment"])

		inv[name] = desc
	}

	return inv, nil
}

// coerceEnvironment accepts both the mapping and the KEY=VAL list forms
// and coerces every value to a string: booleans and numbers render as
// their scalar text, null becomes the empty string.
func coerceEnvironment(raw interface{}) map[string]string {
	switch v := raw.(type) {
	case map[string]interface{}:
		env := make(map[string]string, len(v))
		for k, val := range v {
			env[k] = coerceString(val)
		}
		return env
	case []interface{}:
		env := make(map[string]string, len(v))
		for _, item := range v {
			s := coerceString(item)
			if k, val, found := strings.Cut(s, "="); found {
				env[k] = val
			} else if s != "" {
				env[s] = ""
			}
		}
		return env
	}
	return nil
}

// coerceString renders any scalar as its YAML text; nil becomes "".
// Sequences and mappings render through the YAML encoder, trimmed.
func coerceString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		out, err := yamlv3.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return strings.TrimSpace(string(out))
	}
}

// SortedNames returns inventory keys in lexicographic order, for
// deterministic reporting and persistence.
func SortedNames(inv model.Inventory) []string {
	names := make([]string, 0, len(inv))
	for name := range inv {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
