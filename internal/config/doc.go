// Package config loads the dashboard description.
//
// # Configuration Discovery
//
// Load follows this order:
//
//  1. If a path is given, use it; otherwise ./dashboard.yml
//  2. If the file does not exist, use Default (a system panel on top and a
//     logs panel at the bottom)
//  3. Decode by extension: .toml uses go-toml, anything else YAML
//  4. Normalize, then Validate
//
// WriteDefault writes the default dashboard for --create-config.
//
// # File Format
//
//	refresh_rate: 1.0
//	theme: Nightfox
//	banner:
//	  text: DashTrash
//	  tagline: Real-time dashboards. Questionable aesthetics.
//	logging:
//	  level: info
//	  sink: file
//	panels:
//	  - type: system
//	    position: top
//	  - type: logs
//	    position: bottom
//	    file: /var/log/syslog
//	    filters: [ERROR, WARNING]
//	    max_lines: 20
//	  - type: plugin
//	    plugin_name: demo
//
// Positions are free-form; the layout package decides which are usable.
// Panel types are system, logs, temperature, clock and plugin. Keys a panel
// type does not use are ignored; plugins read their own settings from
// options.
//
// # Normalization
//
// Normalize lower-cases types and positions, defaults refresh_rate to 1.0
// and logs max_lines to 15, and expands ~ in file paths. Validate never
// mutates; it joins every problem it finds into one error.
package config
