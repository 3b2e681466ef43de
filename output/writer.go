package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding"

	"github.com/njclarkbmf/oraschemagen/config"
	"github.com/njclarkbmf/oraschemagen/generator"
)

// maxReportedObjects bounds how many offending object names the coverage
// report keeps.
const maxReportedObjects = 5

// CoverageReport describes what the encoding step had to substitute.
// A non-zero count means the written file is lossy relative to the
// in-memory text; the run still completes successfully.
type CoverageReport struct {
	Encoding    string
	Placeholder string
	Substituted int
	Objects     []string // first objects containing substituted characters
}

// Lossy reports whether any character was substituted.
func (r CoverageReport) Lossy() bool { return r.Substituted > 0 }

// WriteError wraps a filesystem failure with the destination path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// OrderingError reports an object handed to the writer before one of its
// declared dependencies. This is a generator defect, never tolerated.
type OrderingError struct {
	Object  string
	Missing string
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("object %s emitted before its dependency %s", e.Object, e.Missing)
}

// FileReport describes one written artifact.
type FileReport struct {
	Path    string
	Objects int
	Bytes   int
}

// Report is the result of a completed write.
type Report struct {
	Files    []FileReport
	Counts   map[generator.Kind]int
	Coverage CoverageReport
}

// Writer serializes an ordered object stream into one combined file or
// one file per kind, converting to the configured encoding on the way
// out. A Writer is single-use: its timestamp is fixed at construction so
// rendering is deterministic for the run.
type Writer struct {
	cfg         config.Config
	enc         encoding.Encoding
	placeholder []byte
	now         time.Time
}

func NewWriter(cfg config.Config) (*Writer, error) {
	enc, err := lookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	placeholder, err := encodePlaceholder(enc, cfg.Placeholder)
	if err != nil {
		return nil, err
	}
	return &Writer{
		cfg:         cfg,
		enc:         enc,
		placeholder: placeholder,
		now:         time.Now(),
	}, nil
}

// checkOrder verifies the dependency contract over the whole stream
// before anything touches the filesystem.
func checkOrder(objects []generator.Object) error {
	seen := make(map[string]struct{}, len(objects))
	for _, o := range objects {
		for _, dep := range o.DependsOn {
			if _, ok := seen[strings.ToUpper(dep)]; !ok {
				return &OrderingError{Object: o.Qualified(), Missing: dep}
			}
		}
		seen[o.Qualified()] = struct{}{}
	}
	return nil
}

// Render produces the full text of the combined artifact: header, every
// object in order, footer. The same text is what Write encodes, so a
// UTF-8 write round-trips byte for byte.
func (w *Writer) Render(objects []generator.Object) (string, error) {
	if err := checkOrder(objects); err != nil {
		return "", err
	}
	return w.render(objects), nil
}

func (w *Writer) render(objects []generator.Object) string {
	var b strings.Builder
	if w.cfg.IncludeHeader {
		b.WriteString(w.header(len(objects)))
	}
	for _, o := range objects {
		fmt.Fprintf(&b, "-- %s: %s\n", o.Kind, o.Name)
		b.WriteString(o.SQL)
		b.WriteString("\n\n")
	}
	if w.cfg.IncludeHeader {
		b.WriteString(w.footer(objects))
	}
	return b.String()
}

func (w *Writer) header(count int) string {
	return fmt.Sprintf(`-- Export dump file generated by oraschemagen
-- Version: Oracle Database 19c Enterprise Edition Release 19.0.0.0.0
-- Export Timestamp: %s
-- Character Set: %s
-- Objects: %d

`, w.now.Format("02-Jan-2006 15:04:05"), strings.ToUpper(w.cfg.Encoding), count)
}

func (w *Writer) footer(objects []generator.Object) string {
	counts := countByKind(objects)
	var parts []string
	for _, k := range generator.Order {
		if counts[k] > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
		}
	}
	return fmt.Sprintf(`
-- Export completed successfully
-- Object counts: %s
-- Export Timestamp: %s
`, strings.Join(parts, " "), w.now.Format("02-Jan-2006 15:04:05"))
}

func countByKind(objects []generator.Object) map[generator.Kind]int {
	counts := make(map[generator.Kind]int)
	for _, o := range objects {
		counts[o.Kind]++
	}
	return counts
}

// Write serializes the stream. Single-file mode produces one combined,
// timestamped artifact; split mode produces one file per object kind
// present, each with its own framing. Returns the run report, including
// the encoding coverage.
func (w *Writer) Write(objects []generator.Object) (*Report, error) {
	if err := checkOrder(objects); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(w.cfg.OutputDir, 0755); err != nil {
		return nil, &WriteError{Path: w.cfg.OutputDir, Err: err}
	}

	report := &Report{
		Counts: countByKind(objects),
		Coverage: CoverageReport{
			Encoding:    strings.ToLower(w.cfg.Encoding),
			Placeholder: w.cfg.Placeholder,
		},
	}

	if w.cfg.SingleFile {
		name := fmt.Sprintf("oraschemagen_%s.sql", w.now.Format("20060102_150405"))
		if err := w.writeFile(filepath.Join(w.cfg.OutputDir, name), objects, report); err != nil {
			return nil, err
		}
		return report, nil
	}

	for _, kind := range generator.Order {
		var group []generator.Object
		for _, o := range objects {
			if o.Kind == kind {
				group = append(group, o)
			}
		}
		if len(group) == 0 {
			continue
		}
		name := strings.ToLower(string(kind)) + ".sql"
		if err := w.writeFile(filepath.Join(w.cfg.OutputDir, name), group, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// writeFile renders, encodes and writes one artifact. The file handle is
// closed on every path; a partial file can only remain after a fatal
// mid-write error.
func (w *Writer) writeFile(path string, objects []generator.Object, report *Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Err: cerr}
		}
	}()

	written := 0
	emit := func(text, objectName string) error {
		encoded, substituted := encodeText(w.enc, text, w.placeholder)
		if substituted > 0 {
			report.Coverage.Substituted += substituted
			if objectName != "" && len(report.Coverage.Objects) < maxReportedObjects {
				report.Coverage.Objects = append(report.Coverage.Objects, objectName)
			}
		}
		n, werr := f.Write(encoded)
		written += n
		if werr != nil {
			return &WriteError{Path: path, Err: werr}
		}
		return nil
	}

	if w.cfg.IncludeHeader {
		if err := emit(w.header(len(objects)), ""); err != nil {
			return err
		}
	}
	for _, o := range objects {
		if err := emit(fmt.Sprintf("-- %s: %s\n%s\n\n", o.Kind, o.Name, o.SQL), o.Qualified()); err != nil {
			return err
		}
	}
	if w.cfg.IncludeHeader {
		if err := emit(w.footer(objects), ""); err != nil {
			return err
		}
	}

	report.Files = append(report.Files, FileReport{Path: path, Objects: len(objects), Bytes: written})
	return nil
}
