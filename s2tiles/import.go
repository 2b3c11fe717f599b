package s2tiles

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

var tileFilePattern = regexp.MustCompile(`^(\d+)/(\d+)/(\d+)\.\w+$`)

// ImportDirectory walks a directory tree of the conventional {z}/{x}/{y}.ext
// tile layout and writes every tile it finds into the archive at out,
// concurrently reading source files and sequentially appending them (the
// Archive's append cursor is not safe for concurrent writers). Grounded on
// the teacher's Extract (extract.go), which drives a worker pool with
// errgroup and reports progress with progressbar and go-humanize, adapted
// from a remote-archive subset-extraction into a local-directory bulk
// import.
func ImportDirectory(out *Archive, root string, maxzoom uint8) error {
	type found struct {
		z       uint8
		x, y    uint32
		relpath string
	}

	var files []found
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		m := tileFilePattern.FindStringSubmatch(filepath.ToSlash(rel))
		if m == nil {
			return nil
		}
		z, _ := strconv.ParseUint(m[1], 10, 8)
		x, _ := strconv.ParseUint(m[2], 10, 32)
		y, _ := strconv.ParseUint(m[3], 10, 32)
		if uint8(z) > maxzoom {
			return nil
		}
		files = append(files, found{z: uint8(z), x: uint32(x), y: uint32(y), relpath: path})
		return nil
	})
	if err != nil {
		return fmt.Errorf("s2tiles: walk %s: %w", root, err)
	}

	bar := progressbar.Default(int64(len(files)), "importing tiles")
	contents := make([][]byte, len(files))

	group := new(errgroup.Group)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		i, f := i, f
		group.Go(func() error {
			data, err := os.ReadFile(f.relpath)
			if err != nil {
				return fmt.Errorf("s2tiles: read %s: %w", f.relpath, err)
			}
			contents[i] = data
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	var total uint64
	for i, f := range files {
		if err := out.PutTile(f.z, f.x, f.y, contents[i]); err != nil {
			return fmt.Errorf("s2tiles: put tile %d/%d/%d: %w", f.z, f.x, f.y, err)
		}
		total += uint64(len(contents[i]))
		bar.Add(1)
	}
	fmt.Printf("imported %d tiles (%s)\n", len(files), humanize.Bytes(total))
	return nil
}
