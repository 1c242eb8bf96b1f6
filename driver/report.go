package driver

// Report summarises one input file's outcome (spec §4.6 "records are
// counted and reported per file"; spec §7 class 2 "reported, the file is
// skipped, other files continue").
type Report struct {
	File    string
	Records int
	Err     error
}
