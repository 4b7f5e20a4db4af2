package surfaces

import (
	"testing"

	"dungeon-viewer/internal/config"

	"github.com/go-gl/gl/v4.1-core/gl"
)

func TestPolygonModeFollowsWireframeSetting(t *testing.T) {
	prev := config.GetWireframeMode()
	defer config.SetWireframeMode(prev)

	config.SetWireframeMode(true)
	if got := polygonMode(config.GetWireframeMode()); got != gl.LINE {
		t.Errorf("wireframe on: mode = %#x, want LINE", got)
	}
	config.SetWireframeMode(false)
	if got := polygonMode(config.GetWireframeMode()); got != gl.FILL {
		t.Errorf("wireframe off: mode = %#x, want FILL", got)
	}
}
