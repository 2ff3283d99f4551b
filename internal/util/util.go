// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	xtablewriter "github.com/xlab/tablewriter"
)

// FileExist checks if a file exist on disk
func FileExist(path string) bool {
	if path == "" {
		return false
	}

	_, err := os.Stat(path)

	return !os.IsNotExist(err)
}

// FileIsRegular tests if a file is a regular file, symlinks are followed
func FileIsRegular(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}

	return stat.Mode().IsRegular()
}

// Sha256HashFile computes the sha256 sum of a file and returns the hex encoded result
func Sha256HashFile(path string) (string, error) {
	hasher := sha256.New()
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	_, err = io.Copy(hasher, f)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// LongestString determines the length of the longest string in list, capped at max
func LongestString(list []string, max int) int {
	longest := 0
	for _, i := range list {
		if len(i) > longest {
			longest = len(i)
		}

		if max != 0 && longest > max {
			return max
		}
	}

	return longest
}

// StringsMapKeys returns the keys from a map[string]string in sorted order
func StringsMapKeys(data map[string]string) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// DumpMapStrings shows k: v of a map[string]string left padded by int, the k will be right aligned and value left aligned
func DumpMapStrings(w io.Writer, data map[string]string, leftPad int) {
	longest := LongestString(StringsMapKeys(data), 0) + leftPad

	for _, k := range StringsMapKeys(data) {
		fmt.Fprintf(w, "%s: %s\n", strings.Repeat(" ", longest-len(k))+k, data[k])
	}
}

// NewUTF8Table creates a table formatted with UTF8 line drawing characters
func NewUTF8Table(hdr ...any) *xtablewriter.Table {
	table := xtablewriter.CreateTable()
	table.UTF8Box()

	if len(hdr) > 0 {
		table.AddHeaders(hdr...)
	}

	return table
}

// NewUTF8TableWithTitle creates a titled table formatted with UTF8 line drawing characters
func NewUTF8TableWithTitle(title string, hdr ...any) *xtablewriter.Table {
	table := NewUTF8Table(hdr...)
	table.AddTitle(title)

	return table
}
