// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

package nodegen

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FileAction represents the type of change a file would undergo during
// generation
type FileAction string

const (
	FileActionAdd    FileAction = "add"
	FileActionUpdate FileAction = "update"
	FileActionEqual  FileAction = "equal"
)

// PlannedFile represents a file and the action that would be taken on it
// during generation
type PlannedFile struct {
	Path   string
	Action FileAction
}

// Plan performs a full generation into a temporary directory and compares the
// result against the real destination. It returns the files that would be
// written with their planned action (add, update, equal) without modifying
// the destination. Files already in the destination that the generator would
// not write are left alone and not reported.
func (g *Generator) Plan() ([]PlannedFile, error) {
	origDest := g.cfg.Destination
	origForce := g.cfg.Force
	origOut := g.out
	origCreated := g.created

	tmpBase, err := os.MkdirTemp("", "nodegen-plan-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpBase)

	tmpTarget := filepath.Join(tmpBase, "target")
	g.cfg.Destination = tmpTarget
	g.cfg.Force = true
	g.out = io.Discard

	genErr := g.Generate()

	g.cfg.Destination = origDest
	g.cfg.Force = origForce
	g.out = origOut
	g.created = origCreated

	if genErr != nil {
		return nil, genErr
	}

	var result []PlannedFile
	err = filepath.WalkDir(tmpTarget, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(tmpTarget, path)
		if err != nil {
			return err
		}

		realPath := filepath.Join(origDest, rel)
		_, statErr := os.Stat(realPath)
		switch {
		case os.IsNotExist(statErr):
			result = append(result, PlannedFile{Path: filepath.ToSlash(rel), Action: FileActionAdd})
		case statErr != nil:
			return statErr
		default:
			tmpHash, err := sha256File(path)
			if err != nil {
				return err
			}
			realHash, err := sha256File(realPath)
			if err != nil {
				return err
			}

			action := FileActionUpdate
			if tmpHash == realHash {
				action = FileActionEqual
			}
			result = append(result, PlannedFile{Path: filepath.ToSlash(rel), Action: action})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})

	return result, nil
}

func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
