package imaging

// Reporter receives user-facing progress from a Walker. File is called once
// per eligible image, in processing order; Summary once at the end of Run.
type Reporter interface {
	File(rel string, o Outcome)
	Planned(rel, dest string)
	Summary(s *Stats)
}

// MultiReporter fans every call out to each reporter in order.
type MultiReporter []Reporter

func (m MultiReporter) File(rel string, o Outcome) {
	for _, r := range m {
		r.File(rel, o)
	}
}

func (m MultiReporter) Planned(rel, dest string) {
	for _, r := range m {
		r.Planned(rel, dest)
	}
}

func (m MultiReporter) Summary(s *Stats) {
	for _, r := range m {
		r.Summary(s)
	}
}

type nopReporter struct{}

func (nopReporter) File(string, Outcome)   {}
func (nopReporter) Planned(string, string) {}
func (nopReporter) Summary(*Stats)         {}
