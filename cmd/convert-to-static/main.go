// seehuhn.de/go/instancer - create static instances of variable fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Convert-to-static creates a static instance of a variable font, for
// use with consumers which cannot handle variable fonts.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/instancer"
)

// A request describes one conversion as given on the command line.
type request struct {
	inName  string
	outName string
	weight  int
	italic  bool
}

var errTooFewArgs = errors.New("too few arguments")

// parseArgs interprets the command line arguments (without the program
// name).  The fourth argument selects an italic instance when it is the
// word "italic", in any capitalization; other values are ignored.
func parseArgs(args []string) (*request, error) {
	if len(args) < 3 {
		return nil, errTooFewArgs
	}
	weight, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("invalid weight: %s", args[2])
	}
	req := &request{
		inName:  args[0],
		outName: args[1],
		weight:  weight,
		italic:  len(args) > 3 && strings.EqualFold(args[3], "italic"),
	}
	return req, nil
}

func main() {
	req, err := parseArgs(os.Args[1:])
	if err != nil {
		if err != errTooFewArgs {
			fmt.Printf("Error: %v\n", err)
		}
		usage()
		os.Exit(1)
	}

	if _, err := os.Stat(req.inName); err != nil {
		fmt.Printf("Error: Input file not found: %s\n", req.inName)
		os.Exit(1)
	}

	fmt.Printf("Converting: %s -> %s\n", req.inName, req.outName)
	fmt.Printf("  Weight: %d, Italic: %v\n", req.weight, req.italic)

	summary, err := instancer.ConvertFile(req.inName, req.outName, req.weight, req.italic)
	if err != nil {
		fmt.Printf("  Error creating static instance: %v\n", err)
		fmt.Println("  Failed to create static font")
		os.Exit(1)
	}

	if summary.Static {
		fmt.Println("  Font is already static, copying as-is")
	} else {
		fmt.Printf("  Pinning axes: %s\n", formatLimits(summary.Pinned))
	}
	fmt.Printf("  Created static font: %s (%d bytes)\n", req.outName, summary.Size)
}

// formatLimits formats the pinned axis values with the tags in
// alphabetical order.
func formatLimits(limits map[string]float64) string {
	tags := maps.Keys(limits)
	sort.Strings(tags)

	var parts []string
	for _, tag := range tags {
		parts = append(parts, fmt.Sprintf("%s=%s",
			tag, strconv.FormatFloat(limits[tag], 'g', -1, 64)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func usage() {
	fmt.Println("Usage: convert-to-static <input.ttf> <output.ttf> <weight> [italic]")
	fmt.Println()
	fmt.Println("Arguments:")
	fmt.Println("  input.ttf   - path to the input variable font")
	fmt.Println("  output.ttf  - path for the output static font")
	fmt.Println("  weight      - font weight (100-900)")
	fmt.Println("  italic      - optional: \"italic\" to create an italic instance")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  convert-to-static Roboto[wght].ttf Roboto-Regular.ttf 400")
	fmt.Println("  convert-to-static Roboto[wght].ttf Roboto-Bold.ttf 700")
	fmt.Println("  convert-to-static Roboto[wght].ttf Roboto-Italic.ttf 400 italic")
}
