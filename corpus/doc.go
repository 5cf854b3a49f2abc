// Package corpus holds the fixed layout of the Berlin Database of Emotional
// Speech distribution: the code tables baked into its file names, the speaker
// metadata published with it, and the parsers for the file names and the
// erkennung.txt recognition table.
package corpus
