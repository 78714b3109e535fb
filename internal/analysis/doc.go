// Package analysis compares the persisted word frequency table with a
// reference language corpus.
//
// In article mode the candidate words are the words of the table; in
// language mode they are the TopK most frequent words of the corpus. Both
// frequency columns are divided by their own maximum, so the most frequent
// candidate of each column scores exactly 1.0.
package analysis
