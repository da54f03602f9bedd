package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nleclerc/dockhand/internal/model"
)

func TestMergePreservesUserCustomizations(t *testing.T) {
	current := model.Inventory{
		"web": {Name: "web", Port: 3000, Detected: false},
	}
	detected := model.Inventory{
		"web": {Name: "web", Port: 8080, Detected: true},
		"api": {Name: "api", Port: 9000, Detected: true},
	}

	result := Reconcile(current, detected, PolicyMerge)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Removed)
	assert.Equal(t, 0, result.Replaced)

	web := result.Merged["web"]
	assert.Equal(t, 3000, web.Port, "user-set port wins over re-detection")
	assert.True(t, web.Detected)

	api, ok := result.Merged["api"]
	require.True(t, ok)
	assert.Equal(t, 9000, api.Port)
}

func TestMergeRetainsUndetectedServices(t *testing.T) {
	current := model.Inventory{
		"legacy": {Name: "legacy", Port: 5000, Description: "hand-authored"},
	}
	detected := model.Inventory{
		"web": {Name: "web", Port: 8080, Detected: true},
	}

	result := Reconcile(current, detected, PolicyMerge)

	require.Contains(t, result.Merged, "legacy")
	assert.Equal(t, current["legacy"], result.Merged["legacy"])
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 0, result.Removed)
}

func TestMergeOverlaysFields(t *testing.T) {
	current := model.Inventory{
		"web": {
			Name:        "web",
			Description: "my frontend",
			Environment: map[string]string{"DEBUG": "true"},
		},
	}
	detected := model.Inventory{
		"web": {
			Name:        "web",
			Port:        8080,
			Description: "nginx:latest",
			Volumes:     []string{"./html:/usr/share/nginx/html"},
			Environment: map[string]string{"TZ": "UTC"},
			Detected:    true,
		},
	}

	result := Reconcile(current, detected, PolicyMerge)
	web := result.Merged["web"]

	assert.Equal(t, 8080, web.Port, "detected fills fields the user never set")
	assert.Equal(t, "my frontend", web.Description)
	assert.Equal(t, []string{"./html:/usr/share/nginx/html"}, web.Volumes)
	assert.Equal(t, "true", web.Environment["DEBUG"], "user env vars kept")
	assert.Equal(t, "UTC", web.Environment["TZ"], "detected env vars added")
}

func TestMergeIdempotent(t *testing.T) {
	current := model.Inventory{
		"web": {Name: "web", Port: 3000},
	}
	detected := model.Inventory{
		"web": {Name: "web", Port: 8080, Detected: true},
		"db":  {Name: "db", Port: 5432, Detected: true},
	}

	first := Reconcile(current, detected, PolicyMerge)
	second := Reconcile(first.Merged, detected, PolicyMerge)

	assert.Equal(t, first.Merged, second.Merged, "reapplying the same detection must not drift")
}

func TestReplaceCompleteness(t *testing.T) {
	current := model.Inventory{
		"web":    {Name: "web", Port: 3000},
		"legacy": {Name: "legacy", Port: 5000},
		"cache":  {Name: "cache", Port: 6379},
	}
	detected := model.Inventory{
		"web": {Name: "web", Port: 8080, Detected: true},
		"api": {Name: "api", Port: 9000, Detected: true},
	}

	result := Reconcile(current, detected, PolicyReplace)

	assert.Len(t, result.Merged, 2)
	assert.Contains(t, result.Merged, "web")
	assert.Contains(t, result.Merged, "api")
	assert.NotContains(t, result.Merged, "legacy")

	assert.Equal(t, 1, result.Replaced, "web existed before")
	assert.Equal(t, 1, result.Added, "api is new")
	assert.Equal(t, 2, result.Removed, "legacy and cache dropped")
	assert.Equal(t, 0, result.Updated)

	assert.Equal(t, 8080, result.Merged["web"].Port, "replace takes detected values verbatim")
}

func TestEmptyDetectedIsNoOp(t *testing.T) {
	current := model.Inventory{
		"web": {Name: "web", Port: 3000},
	}

	for _, policy := range []Policy{PolicyMerge, PolicyReplace} {
		result := Reconcile(current, model.Inventory{}, policy)

		assert.True(t, result.NothingDetected, "policy %s", policy)
		assert.True(t, result.InSync())
		assert.Equal(t, current, result.Merged)
	}
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	current := model.Inventory{
		"web": {Name: "web", Port: 3000, Environment: map[string]string{"A": "1"}},
	}
	detected := model.Inventory{
		"web": {Name: "web", Port: 8080, Environment: map[string]string{"B": "2"}, Detected: true},
	}

	result := Reconcile(current, detected, PolicyMerge)
	result.Merged["web"].Environment["C"] = "3"

	assert.NotContains(t, current["web"].Environment, "C")
	assert.NotContains(t, detected["web"].Environment, "C")
	assert.Equal(t, 3000, current["web"].Port)
	assert.Equal(t, 8080, detected["web"].Port)
}

func TestInSync(t *testing.T) {
	assert.True(t, Result{}.InSync())
	assert.False(t, Result{Added: 1}.InSync())
	assert.False(t, Result{Removed: 2}.InSync())
}
