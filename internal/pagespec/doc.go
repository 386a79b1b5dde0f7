// Package pagespec implements the page selection language of pdfsplice.
//
// A source on the command line is followed by tokens such as "7", "2-5",
// "-11", "9-", "1,3-5", "R90" or "=". ParseSection turns those tokens into
// page requests for that source, Sequence merges the requests of all sources
// into output order, and SpreadFix generates the tokens that undo a booklet
// scan.
package pagespec
