// Copyright 2024-2025 The traceback Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in the
// LICENSE file

// traceview browses the JSON error reports that the traceback fallback
// callback and the report package persist.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "traceview",
	Short: "Browse persisted traceback error reports",
	Long:  `traceview lists and renders the JSON error reports written to the errors directory.`,
}

func main() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)

	rootCmd.PersistentFlags().String("dir", "errors", "directory containing error reports")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
