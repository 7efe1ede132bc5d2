// Package app is the composition root for weatherscreen.
//
// # Startup sequence
//
//  1. Load configuration (TOML file layered under .env / environment)
//  2. Build the OpenWeatherMap client; geocode a bare place name once
//  3. Build the simulated panel and the screen controller over it
//  4. Register the panel's single press callback with the controller
//  5. Run the controller loop and the terminal UI until either stops
//
// Exactly one controller is constructed per process: a second one would
// double-drive the panel.
package app
