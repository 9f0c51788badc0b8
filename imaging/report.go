package imaging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/toolbox-cli/toolbox/version"
)

// FileRecord is one file's line in a Report.
type FileRecord struct {
	Path            string `json:"path"`
	Dest            string `json:"dest,omitempty"`
	Status          string `json:"status"` // ok, failed, planned
	OriginalBytes   int64  `json:"original_bytes,omitempty"`
	CompressedBytes int64  `json:"compressed_bytes,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Report is the JSON document written by --report.
type Report struct {
	RunID           string       `json:"run_id"`
	ToolboxVersion  string       `json:"toolbox_version"`
	Root            string       `json:"root"`
	Strategy        string       `json:"strategy"`
	Codec           string       `json:"codec,omitempty"`
	Format          string       `json:"format,omitempty"`
	Quality         int          `json:"quality"`
	StartedAt       time.Time    `json:"started_at"`
	FinishedAt      time.Time    `json:"finished_at"`
	Succeeded       int          `json:"succeeded"`
	Failed          int          `json:"failed"`
	Planned         int          `json:"planned,omitempty"`
	OriginalBytes   int64        `json:"original_bytes"`
	CompressedBytes int64        `json:"compressed_bytes"`
	Files           []FileRecord `json:"files"`
}

// Recorder is a Reporter that builds a Report.
type Recorder struct {
	report Report
}

// NewRecorder returns a Recorder for a run over root. The recorded root is
// replaced by the walker's resolved root when the summary arrives.
func NewRecorder(root string, s Strategy, codec Codec) *Recorder {
	r := &Recorder{report: Report{
		ToolboxVersion: version.GetVersion(),
		Root:           root,
		Strategy:       s.Name,
		Format:         string(s.Format),
		Quality:        s.Quality,
		Files:          []FileRecord{},
	}}
	if codec != nil {
		r.report.Codec = codec.Name()
	}
	return r
}

func (r *Recorder) File(rel string, o Outcome) {
	rec := FileRecord{Path: rel, Dest: o.Dest, Status: "ok"}
	if o.OK() {
		rec.OriginalBytes = o.OriginalBytes
		rec.CompressedBytes = o.CompressedBytes
	} else {
		rec.Status = "failed"
		rec.Error = o.Err.Error()
	}
	r.report.Files = append(r.report.Files, rec)
}

func (r *Recorder) Planned(rel, dest string) {
	r.report.Files = append(r.report.Files, FileRecord{Path: rel, Dest: dest, Status: "planned"})
}

func (r *Recorder) Summary(s *Stats) {
	r.report.RunID = s.RunID
	if s.Root != "" {
		r.report.Root = s.Root
	}
	r.report.StartedAt = s.Started
	r.report.FinishedAt = s.Finished
	r.report.Succeeded = s.Succeeded
	r.report.Failed = s.Failed
	r.report.Planned = s.Planned
	r.report.OriginalBytes = s.OriginalBytes
	r.report.CompressedBytes = s.CompressedBytes
}

// Report returns the report built so far.
func (r *Recorder) Report() Report {
	return r.report
}

// Save writes the report as indented JSON, creating parent directories.
func (r *Recorder) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	je := json.NewEncoder(f)
	je.SetIndent("", "  ")
	return je.Encode(r.report)
}
