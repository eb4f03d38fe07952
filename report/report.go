// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

// Package report provides a registerable traceback callback that persists
// each dispatched record as a JSON file and keeps the report directory
// bounded by count and age.

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/stkali/traceback"
)

const (
	writeMode       = 0o200
	day             = 24 * time.Hour
	month           = 30 * day
	reportExtension = ".json"
)

var (
	// define errors for the package.
	ModePermissionError = errors.New("invalid mode permission")
	EmptyDirError       = errors.New("empty report directory")

	// output receives the reporter's diagnostics, defaulting to os.Stdout.
	output io.Writer = os.Stdout

	// for testing, we override the default functions used by the package.
	osMkdirAll  = os.MkdirAll
	osWriteFile = os.WriteFile
	osReadDir   = os.ReadDir
	osRemove    = os.Remove
)

// SetOutput sets the writer for the reporter's diagnostics.
func SetOutput(writer io.Writer) {
	output = writer
}

// Option is a configuration option for the Reporter. default is `defaultOption`
type Option struct {

	// MaxAge(default: 30 days) defines the maximum age a report file can have
	// before it is considered for cleanup.
	// = 0 means no report files are retained.
	// < 0 the deletion strategy based on `MaxAge` will not work.
	MaxAge time.Duration

	// Backups(default: 1000) defines the maximum number of report files that
	// can be retained. When the limit is reached, the oldest files are
	// deleted to make space for new ones.
	// = 0 means no report files are retained.
	// < 0 the deletion strategy based on `Backups` will not work.
	Backups int

	// ModePerm(default: 0o644) specifies the file permission bits used when
	// creating report files.
	ModePerm os.FileMode
}

var defaultOption = &Option{
	MaxAge:   month,
	Backups:  1000,
	ModePerm: 0o644,
}

// clone returns a copy of the Option.
func (o *Option) clone() *Option {
	cp := *o
	return &cp
}

// SetOption is a configuring reporter function type.
type SetOption func(*Option) error

func WithMaxAge(age time.Duration) SetOption {
	return func(opt *Option) error {
		opt.MaxAge = age
		return nil
	}
}

func WithBackups(backups int) SetOption {
	return func(opt *Option) error {
		opt.Backups = backups
		return nil
	}
}

func WithModePerm(perm os.FileMode) SetOption {
	return func(opt *Option) error {
		if perm&writeMode == 0 {
			return ModePermissionError
		}
		opt.ModePerm = perm
		return nil
	}
}

// Reporter writes one JSON file per dispatched record under its directory
// and prunes the directory after every write. It implements the
// traceback.Callback contract and is registered with traceback.SetCallback.
// Failures on the write and prune paths are reported to the output writer
// and swallowed: the callback runs as a terminal sink with no caller left to
// receive an error.
type Reporter struct {
	// dir is where report files are written; created on demand.
	dir string

	// option contains the configuration options for the reporter.
	option *Option

	// mtx to protect concurrent dispatches writing and pruning at once.
	mtx sync.Mutex
}

// New returns a Reporter writing to dir, configured by opts.
func New(dir string, opts ...SetOption) (*Reporter, error) {
	if dir == "" {
		return nil, EmptyDirError
	}
	r := &Reporter{
		dir:    dir,
		option: defaultOption.clone(),
	}
	var err error
	for _, opt := range opts {
		if opt != nil {
			err = errors.Join(err, opt(r.option))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set option, err: %s", err)
	}
	return r, nil
}

var _ traceback.Callback = (*Reporter)(nil)

// Call persists the record and prunes the report directory.
func (r *Reporter) Call(err *traceback.Error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if e := r.write(err); e != nil {
		_, _ = fmt.Fprintf(output, "error when writing report: %s\n", e)
		return
	}
	if e := r.prune(); e != nil {
		_, _ = fmt.Fprintf(output, "error when pruning reports: %s\n", e)
	}
}

// write serializes the record to a timestamped file under the report
// directory.
func (r *Reporter) write(record *traceback.Error) error {
	if err := osMkdirAll(r.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	stamp := fmt.Sprintf("%s.%d", now.Format("2006-01-02.15-04-05"), now.UnixNano())
	return osWriteFile(filepath.Join(r.dir, stamp+reportExtension), data, r.option.ModePerm)
}

type reportFile struct {
	// modTime is the modification time of the report file.
	modTime time.Time
	// file is the path of the report file.
	file string
}

// prune deletes report files beyond the Backups count and older than MaxAge,
// newest files surviving first.
func (r *Reporter) prune() error {
	files, err := r.reports()
	if err != nil {
		return err
	}
	// newest first
	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.After(files[j].modTime)
	})
	var stale []reportFile
	if r.option.Backups >= 0 && len(files) > r.option.Backups {
		stale = append(stale, files[r.option.Backups:]...)
		files = files[:r.option.Backups]
	}
	if r.option.MaxAge >= 0 {
		deadline := time.Now().Add(-r.option.MaxAge)
		for _, f := range files {
			if f.modTime.Before(deadline) {
				stale = append(stale, f)
			}
		}
	}
	for _, f := range stale {
		if err = osRemove(f.file); err != nil {
			return err
		}
	}
	return nil
}

// reports enumerates the report files currently in the directory.
func (r *Reporter) reports() ([]reportFile, error) {
	entries, err := osReadDir(r.dir)
	if err != nil {
		return nil, err
	}
	files := make([]reportFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), reportExtension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, reportFile{
			modTime: info.ModTime(),
			file:    filepath.Join(r.dir, entry.Name()),
		})
	}
	return files, nil
}
