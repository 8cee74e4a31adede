// Package resources serves the dashboard's static assets.
package resources

// StaticDirectoryPath is the path to static assets from the project root.
const StaticDirectoryPath = "internal/ui/resources/static"

// External scripts and stylesheets loaded by the page shell.
const (
	DatastarScript  = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"
	LeafletScript   = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"
	LeafletStyle    = "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"
	TileURLTemplate = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
)

// StaticPath returns the URL path for a static asset.
func StaticPath(path string) string {
	return "/static/" + path
}
