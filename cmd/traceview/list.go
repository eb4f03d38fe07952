// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stkali/traceback"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List error reports in the reports directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cmd.Flags().GetString("dir")
		if err != nil {
			return err
		}
		reports, err := loadReports(dir)
		if err != nil {
			return err
		}
		if len(reports) == 0 {
			fmt.Printf("no error reports in %s\n", dir)
			return nil
		}
		for _, rep := range reports {
			file, line := rep.record.Origin()
			fmt.Printf("%s  %s  %s (%s:%d)\n",
				rep.name,
				levelColor(rep.record.Level()).Sprintf("%-8s", rep.record.Level()),
				rep.record.Message(), filepath.Base(file), line)
		}
		return nil
	},
}

type report struct {
	name   string
	record *traceback.Error
}

// loadReports reads every .json report in dir, oldest first. The timestamped
// filenames sort chronologically.
func loadReports(dir string) ([]report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var reports []report
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		record, err := loadReport(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %s\n", entry.Name(), err)
			continue
		}
		reports = append(reports, report{name: entry.Name(), record: record})
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].name < reports[j].name })
	return reports, nil
}

func loadReport(path string) (*traceback.Error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	record := &traceback.Error{}
	if err = json.Unmarshal(data, record); err != nil {
		return nil, err
	}
	return record, nil
}

// levelColor maps a severity to the color it is rendered with.
func levelColor(level traceback.Level) *color.Color {
	switch level {
	case traceback.LevelError:
		return color.New(color.FgRed)
	case traceback.LevelWarn:
		return color.New(color.FgYellow)
	case traceback.LevelDebug:
		return color.New(color.FgCyan)
	case traceback.LevelLog:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite)
	}
}
