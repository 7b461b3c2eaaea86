// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

package nodegen

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/kballard/go-shellquote"
)

// emitter performs all filesystem writes of a generation run and reports each
// of them as a one line creation notice on the output writer
type emitter struct {
	log     Logger
	out     io.Writer
	post    []map[string]string
	base    string
	created []string
}

func (e *emitter) notice(path string) {
	fmt.Fprintf(e.out, "%s : %s\n", text.FgGreen.Sprint("create"), path)
}

// ensureDir creates base/rel and any missing ancestors, emitting a single
// notice per call. Creating a directory that already exists is a no-op.
func (e *emitter) ensureDir(base string, rel string) error {
	dir := filepath.Join(base, rel)

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	e.notice(dir + string(filepath.Separator))

	if e.log != nil {
		e.log.Debugf("created directory %s", dir)
	}

	return nil
}

// write stores content at path, creating or truncating the file. A zero mode
// selects the 0666 default, the umask applies as usual.
func (e *emitter) write(out string, content []byte, mode fs.FileMode) error {
	if mode == 0 {
		mode = 0o666
	}

	err := os.WriteFile(out, content, mode)
	if err != nil {
		return fmt.Errorf("cannot write %s: %w", out, err)
	}

	e.track(out)
	e.notice(out)

	if e.log != nil {
		e.log.Debugf("wrote %d bytes to %s", len(content), out)
	}

	return e.postFile(out)
}

// copyTemplate copies a static template file unchanged to dest
func (e *emitter) copyTemplate(source fs.FS, name string, dest string) error {
	raw, err := fs.ReadFile(source, name)
	if err != nil {
		return fmt.Errorf("cannot read template %s: %w", name, err)
	}

	return e.write(dest, raw, 0)
}

// copyTemplateMulti copies every file in sourceDir whose base name matches
// the shell glob pattern into destDir, preserving file names
func (e *emitter) copyTemplateMulti(source fs.FS, sourceDir string, destDir string, pattern string) error {
	entries, err := fs.ReadDir(source, sourceDir)
	if err != nil {
		return fmt.Errorf("cannot read template directory %s: %w", sourceDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matched, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if !matched {
			continue
		}

		err = e.copyTemplate(source, path.Join(sourceDir, entry.Name()), filepath.Join(destDir, entry.Name()))
		if err != nil {
			return err
		}
	}

	return nil
}

func (e *emitter) track(out string) {
	rel, err := filepath.Rel(e.base, out)
	if err != nil {
		rel = out
	}

	e.created = append(e.created, filepath.ToSlash(rel))
}

func (e *emitter) postFile(f string) error {
	for _, p := range e.post {
		for g, v := range p {
			matched, err := filepath.Match(g, filepath.Base(f))
			if err != nil {
				return err
			}

			if !matched {
				continue
			}

			parts, err := shellquote.Split(v)
			if err != nil {
				return err
			}

			cmd := parts[0]
			var args []string
			hasPlaceholder := false
			for _, p := range parts[1:] {
				if strings.Contains(p, "{}") {
					args = append(args, strings.ReplaceAll(p, "{}", f))
					hasPlaceholder = true
				} else {
					args = append(args, p)
				}
			}

			if !hasPlaceholder {
				args = append(args, f)
			}

			if e.log != nil {
				e.log.Infof("Post processing using: %s %s", cmd, strings.Join(args, " "))
			}

			out, err := exec.Command(cmd, args...).CombinedOutput()
			if err != nil {
				return fmt.Errorf("failed to post process %s\nerror: %w\noutput: %q", f, err, out)
			}
		}
	}

	return nil
}
