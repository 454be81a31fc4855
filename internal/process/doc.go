// Package process reaps headless browser process trees that outlive their
// launcher.
package process
