// Copyright 2019 The Wuffs Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// ----------------

/*
zlibtool decodes zlib-wrapped DEFLATE data.

Usage:

zlibtool [flags] [input_filename]

If no input_filename is given, stdin is used. Either way, output is written to
stdout.

By default, the trailing Adler-32 checksum is verified; -verify=false skips
that check (the compressed payload is still decoded and validated either
way). -mode selects the OutputBuffer growth strategy used internally:
"adaptive" (the default) grows one contiguous buffer on demand; "windowed"
bounds peak working memory to roughly one -blocksize chunk plus the 32KiB
sliding window, at the cost of a final concatenation.

Examples:

  zlibtool foo.zlib | sha256sum
  zlibtool -verify=false foo.zlib > foo.raw
  zlibtool -mode=windowed -blocksize=65536 foo.zlib > foo.raw
*/
package main

import (
	"errors"
	"flag"
	"io"
	"io/ioutil"
	"os"

	"github.com/acthp/goflate/lib/deflate"
	"github.com/acthp/goflate/lib/zlib"
)

var (
	verifyFlag    = flag.Bool("verify", true, "whether to check the trailing Adler-32 checksum")
	modeFlag      = flag.String("mode", "adaptive", "the OutputBuffer growth strategy, \"adaptive\" or \"windowed\"")
	blocksizeFlag = flag.Uint64("blocksize", 0, "the windowed-mode chunk size, or the adaptive-mode initial size hint (0 means a default)")
)

func usage() {}

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	flag.Usage = usage
	flag.Parse()

	mode, err := parseMode(*modeFlag)
	if err != nil {
		return err
	}

	r := io.Reader(os.Stdin)
	switch flag.NArg() {
	case 0:
		// No-op.
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	default:
		return errors.New("too many filenames; the maximum is one")
	}

	input, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}

	out, err := zlib.Decode(input, zlib.Options{
		BlockSize: int(*blocksizeFlag),
		Mode:      mode,
		Verify:    *verifyFlag,
	})
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(out)
	return err
}

func parseMode(s string) (deflate.Mode, error) {
	switch s {
	case "adaptive":
		return deflate.Adaptive, nil
	case "windowed":
		return deflate.Windowed, nil
	}
	return 0, errors.New("invalid -mode")
}
