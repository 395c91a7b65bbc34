// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package singlechecker

import (
	"fmt"
	"path/filepath"

	"golang.org/x/tools/txtar"

	"github.com/ilvet/ilvet/il"
)

// load parses the named inputs. A .txtar argument is an archive whose
// every file is a listing; any other argument is a listing file.
func load(args []string) ([]*il.Listing, error) {
	var listings []*il.Listing
	for _, arg := range args {
		var (
			lst []*il.Listing
			err error
		)
		if filepath.Ext(arg) == ".txtar" {
			lst, err = loadArchive(arg)
		} else {
			var l *il.Listing
			if l, err = il.ParseFile(arg); err == nil {
				lst = []*il.Listing{l}
			}
		}
		if err != nil {
			return nil, err
		}
		for _, l := range lst {
			for _, m := range l.Methods {
				if err := m.Validate(); err != nil {
					return nil, fmt.Errorf("%s: %v", l.Filename, err)
				}
			}
		}
		listings = append(listings, lst...)
	}
	return listings, nil
}

func loadArchive(filename string) ([]*il.Listing, error) {
	ar, err := txtar.ParseFile(filename)
	if err != nil {
		return nil, err
	}
	if len(ar.Files) == 0 {
		return nil, fmt.Errorf("%s: archive contains no listings", filename)
	}
	var listings []*il.Listing
	for _, f := range ar.Files {
		lst, err := il.Parse(filename+"/"+f.Name, f.Data)
		if err != nil {
			return nil, err
		}
		listings = append(listings, lst)
	}
	return listings, nil
}
