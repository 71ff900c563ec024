// Package host models the dependency manager that drives the component
// installer: the project and its fetched packages, the installation manager
// that routes each package to an installer by type, the default library
// installer, and the lifecycle event dispatcher.
//
// The component installer plugs into the host through two points only: it
// registers itself as an Installer, and it registers a handler for the
// post-autoload-dump event, which fires once after every package is in place.
package host
