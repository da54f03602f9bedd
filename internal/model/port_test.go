package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePortMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected PortMapping
	}{
		{
			"8080",
			PortMapping{HostPort: 8080, ContainerPort: 8080, Protocol: "tcp"},
		},
		{
			"8080:80",
			PortMapping{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"},
		},
		{
			"127.0.0.1:8080:80",
			PortMapping{HostIP: "127.0.0.1", HostPort: 8080, ContainerPort: 80, Protocol: "tcp"},
		},
		{
			"8080:80/udp",
			PortMapping{HostPort: 8080, ContainerPort: 80, Protocol: "udp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParsePortMapping(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPortMappingString(t *testing.T) {
	assert.Equal(t, "8080:80", PortMapping{HostPort: 8080, ContainerPort: 80, Protocol: "tcp"}.String())
	assert.Equal(t, "80:80", PortMapping{HostPort: 80, ContainerPort: 80, Protocol: "tcp"}.String())
}

func TestInventoryClone(t *testing.T) {
	inv := Inventory{
		"web": {
			Name:        "web",
			Volumes:     []string{"a:b"},
			Environment: map[string]string{"K": "V"},
		},
	}

	clone := inv.Clone()
	clone["web"].Environment["K"] = "changed"
	clone["web"].Volumes[0] = "x:y"

	assert.Equal(t, "V", inv["web"].Environment["K"])
	assert.Equal(t, "a:b", inv["web"].Volumes[0])
}
