// Package app wires the library, MusicBrainz, genre, sampling and export
// components into the operations the command line and terminal front ends
// offer.
package app
