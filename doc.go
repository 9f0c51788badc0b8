// Package main provides the toolbox command-line interface.
//
// toolbox is a personal collection of small helpers behind one binary. The
// image commands recursively recompress or convert images by shelling out
// to ImageMagick (magick) or squoosh-cli and report the space saved:
//   - compress: recompress jpg/jpeg/png/webp files in place
//   - convert: write converted copies into a mirrored output tree
//   - count: list the images a run would process
//   - check: verify the external encoders are installed
//   - seed: generate placeholder images to try the above on
//
// The utility commands are now (Chinese-format date), pwd, split (novel
// chapters to CSV) and version.
package main
