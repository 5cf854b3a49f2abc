// Package audformat models an annotated audio database: a YAML header
// (db.yaml) declaring media, raters, schemes and tables, plus one CSV file
// per table holding the column values. Tables are either filewise (indexed
// by audio file path) or misc (indexed by an arbitrary typed level such as a
// speaker id), and a scheme may take its labels from a misc table.
//
// Database.Validate checks every value against its scheme before Save; Load
// reads a saved database back with the same types it was written with.
package audformat
