// Package owm talks to the OpenWeatherMap API: current conditions, the
// 5-day/3-hour forecast, direct geocoding, and the icon images.
//
// Requests go through a client-side rate limiter (the free tier is generous
// but finite and this device polls forever) and a circuit breaker, so an
// unreachable network fails fast rather than holding the screen's input path
// for the full request timeout. The core treats every failure as opaque; this
// package does not leak HTTP details upward beyond the error text.
package owm
