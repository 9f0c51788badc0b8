// Package imaging recompresses and converts image trees by shelling out to
// external codecs.
//
// A Walker visits a directory tree depth-first and sequentially. At each
// eligible file it asks its Strategy where the result goes, runs the Codec
// once, and folds the Outcome into a single Stats shared by the whole run.
//
// Two strategies are provided:
//   - InPlace: recompress jpg, jpeg, png and webp files over themselves
//   - Conversion: write jpg, jpeg and png files as another format into a
//     mirrored output tree under the root
//
// Two codecs are provided:
//   - Magick: ImageMagick 7 (`magick`)
//   - Squoosh: squoosh-cli
//
// Preconditions (root exists, codec launches) are checked once per run and
// are fatal. A failing file is counted and reported, never fatal.
package imaging
