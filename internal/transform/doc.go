// Package transform holds the fixed encoder parameter table and turns it into
// ffmpeg argument lists.
//
// The table is keyed by media category and never derived from input files:
// every JPEG gets the same quality, every video the same CRF. Container
// specific codec choices (WebM cannot carry H.264/AAC) are expressed as
// per-extension overrides of the video entry rather than as branches in the
// builder.
package transform
