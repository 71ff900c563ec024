// Package stages implements the built-in pipeline stages.
//
//   - copy relocates each component's declared assets into the component
//     directory
//   - require-js writes a require.js configuration covering every component
//   - require-css concatenates every component's styles into require.css
//   - build-js runs the r.js optimizer over the generated configuration
//   - compress writes .gz and .zst copies of the generated bundles; it is
//     not part of the default plan
//
// Stages find their work through component discovery: every package of the
// component type, every package whose effective metadata declares a
// component bag, and the root project when its own bag lists assets.
package stages
