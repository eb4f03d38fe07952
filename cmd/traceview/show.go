// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <report>",
	Short: "Render one error report's causal chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cmd.Flags().GetString("dir")
		if err != nil {
			return err
		}
		path := args[0]
		if filepath.Dir(path) == "." {
			path = filepath.Join(dir, path)
		}
		record, err := loadReport(path)
		if err != nil {
			return err
		}
		header := levelColor(record.Level())
		_, _ = header.Printf("%s  %s\n", record.Level(), record.CreatedAt().Format("2006-01-02 15:04:05"))
		fmt.Printf("project: %s  computer: %s  user: %s\n\n",
			record.Project(), record.Computer(), record.User())
		fmt.Println(record.Error())
		if extra := record.Extra(); len(extra) > 0 {
			_, _ = color.New(color.Bold).Println("\nextra data:")
			for _, value := range extra {
				fmt.Printf("  %s\n", value)
			}
		}
		return nil
	},
}
