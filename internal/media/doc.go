// Package media classifies files under the asset root and discovers the ones
// mediashrink re-encodes.
//
// Classification is by lowercased extension only; file contents are never
// sniffed. Discovery walks the tree once per run and yields each regular file
// at most once, which is what lets concurrent workers operate without
// coordinating on paths.
package media
