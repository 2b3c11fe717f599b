// Command s2tiles creates, inspects, and serves S2Tiles archives.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/protomaps/go-s2tiles/s2tiles"
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

func main() {
	logger := log.New(os.Stdout, "", log.Ldate|log.Ltime|log.Lshortfile)

	if len(os.Args) < 2 {
		helptext := `Usage: s2tiles [COMMAND] [FLAGS] [ARGS]
Flags must come before the positional arguments.

Creating archives:
s2tiles create [-maxzoom N] [-compression gzip|brotli|zstd|none] OUTPUT.s2tiles
s2tiles import [-maxzoom N] OUTPUT.s2tiles TILE_DIR

Writing and reading tiles:
s2tiles put [-face N] ARCHIVE.s2tiles Z X Y TILE_FILE
s2tiles get [-face N] ARCHIVE.s2tiles Z X Y
s2tiles commit ARCHIVE.s2tiles METADATA_FILE

Inspecting archives:
s2tiles show ARCHIVE.s2tiles
s2tiles stats ARCHIVE.s2tiles
s2tiles coord LON LAT ZOOM

Running a tile server:
s2tiles serve [-p PORT] [-cors VALUE] DIRECTORY`
		fmt.Println(helptext)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "create":
		createCmd := flag.NewFlagSet("create", flag.ExitOnError)
		maxzoom := createCmd.Int("maxzoom", 0, "maximum zoom level")
		compression := createCmd.String("compression", "none", "tile compression: none, gzip, brotli, zstd")
		createCmd.Parse(os.Args[2:])
		path := createCmd.Arg(0)
		if path == "" {
			logger.Fatal("USAGE: create [-maxzoom N] [-compression KIND] OUTPUT.s2tiles")
		}
		kind, err := parseCompression(*compression)
		if err != nil {
			logger.Fatal(err)
		}
		a, err := s2tiles.Open(path, uint8(*maxzoom), kind)
		if err != nil {
			logger.Fatalf("failed to create %s: %v", path, err)
		}
		defer a.Close()
		if err := a.Commit([]byte(`{}`)); err != nil {
			logger.Fatalf("failed to commit %s: %v", path, err)
		}
		logger.Printf("created %s\n", path)

	case "import":
		importCmd := flag.NewFlagSet("import", flag.ExitOnError)
		maxzoom := importCmd.Int("maxzoom", 20, "maximum zoom level to import")
		compression := importCmd.String("compression", "gzip", "tile compression: none, gzip, brotli, zstd")
		importCmd.Parse(os.Args[2:])
		path := importCmd.Arg(0)
		dir := importCmd.Arg(1)
		if path == "" || dir == "" {
			logger.Fatal("USAGE: import [-maxzoom N] OUTPUT.s2tiles TILE_DIR")
		}
		kind, err := parseCompression(*compression)
		if err != nil {
			logger.Fatal(err)
		}
		a, err := s2tiles.Open(path, uint8(*maxzoom), kind)
		if err != nil {
			logger.Fatalf("failed to create %s: %v", path, err)
		}
		defer a.Close()
		if err := s2tiles.ImportDirectory(a, dir, uint8(*maxzoom)); err != nil {
			logger.Fatalf("import failed: %v", err)
		}
		if err := a.Commit([]byte(`{}`)); err != nil {
			logger.Fatalf("failed to commit %s: %v", path, err)
		}

	case "put":
		putCmd := flag.NewFlagSet("put", flag.ExitOnError)
		face := putCmd.Int("face", 0, "cube face (0-5)")
		putCmd.Parse(os.Args[2:])
		args := putCmd.Args()
		if len(args) < 5 {
			logger.Fatal("USAGE: put [-face N] ARCHIVE.s2tiles Z X Y TILE_FILE")
		}
		path, z, x, y := args[0], mustUint8(args[1]), mustUint32(args[2]), mustUint32(args[3])
		data, err := os.ReadFile(args[4])
		if err != nil {
			logger.Fatalf("failed to read %s: %v", args[4], err)
		}
		a, err := s2tiles.Open(path, 0, s2tiles.Unknown)
		if err != nil {
			logger.Fatalf("failed to open %s: %v", path, err)
		}
		defer a.Close()
		if err := a.PutFaceTile(uint8(*face), z, x, y, data); err != nil {
			logger.Fatalf("put failed: %v", err)
		}

	case "get":
		getCmd := flag.NewFlagSet("get", flag.ExitOnError)
		face := getCmd.Int("face", 0, "cube face (0-5)")
		getCmd.Parse(os.Args[2:])
		args := getCmd.Args()
		if len(args) < 4 {
			logger.Fatal("USAGE: get [-face N] ARCHIVE.s2tiles Z X Y")
		}
		path, z, x, y := args[0], mustUint8(args[1]), mustUint32(args[2]), mustUint32(args[3])
		a, err := s2tiles.Open(path, 0, s2tiles.Unknown)
		if err != nil {
			logger.Fatalf("failed to open %s: %v", path, err)
		}
		defer a.Close()
		data, ok, err := a.GetFaceTile(uint8(*face), z, x, y)
		if err != nil {
			logger.Fatalf("get failed: %v", err)
		}
		if !ok {
			logger.Fatalf("tile not found")
		}
		os.Stdout.Write(data)

	case "commit":
		args := os.Args[2:]
		if len(args) < 2 {
			logger.Fatal("USAGE: commit ARCHIVE.s2tiles METADATA_FILE")
		}
		metadata, err := os.ReadFile(args[1])
		if err != nil {
			logger.Fatalf("failed to read %s: %v", args[1], err)
		}
		a, err := s2tiles.Open(args[0], 0, s2tiles.Unknown)
		if err != nil {
			logger.Fatalf("failed to open %s: %v", args[0], err)
		}
		defer a.Close()
		if err := a.Commit(metadata); err != nil {
			logger.Fatalf("commit failed: %v", err)
		}

	case "show":
		args := os.Args[2:]
		if len(args) < 1 {
			logger.Fatal("USAGE: show ARCHIVE.s2tiles")
		}
		path := args[0]
		a, err := s2tiles.Open(path, 0, s2tiles.Unknown)
		if err != nil {
			logger.Fatalf("failed to open %s: %v", path, err)
		}
		defer a.Close()
		info, err := os.Stat(path)
		if err != nil {
			logger.Fatalf("failed to stat %s: %v", path, err)
		}
		if err := s2tiles.Show(os.Stdout, a, info.Size()); err != nil {
			logger.Fatalf("show failed: %v", err)
		}

	case "stats":
		args := os.Args[2:]
		if len(args) < 1 {
			logger.Fatal("USAGE: stats ARCHIVE.s2tiles")
		}
		a, err := s2tiles.Open(args[0], 0, s2tiles.Unknown)
		if err != nil {
			logger.Fatalf("failed to open %s: %v", args[0], err)
		}
		defer a.Close()
		if err := s2tiles.Stats(os.Stdout, a); err != nil {
			logger.Fatalf("stats failed: %v", err)
		}

	case "coord":
		args := os.Args[2:]
		if len(args) < 3 {
			logger.Fatal("USAGE: coord LON LAT ZOOM")
		}
		lon, err1 := strconv.ParseFloat(args[0], 64)
		lat, err2 := strconv.ParseFloat(args[1], 64)
		zoom, err3 := strconv.ParseUint(args[2], 10, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			logger.Fatal("coord: invalid LON, LAT, or ZOOM")
		}
		face, x, y := s2tiles.LonLatToFaceXY(orb.Point{lon, lat}, uint8(zoom))
		fmt.Printf("face=%d z=%d x=%d y=%d\n", face, zoom, x, y)

	case "serve":
		serveCmd := flag.NewFlagSet("serve", flag.ExitOnError)
		port := serveCmd.String("p", "8080", "port to serve on")
		cors := serveCmd.String("cors", "", "CORS allowed origin value")
		serveCmd.Parse(os.Args[2:])
		dir := serveCmd.Arg(0)
		if dir == "" {
			logger.Fatal("USAGE: serve [-p PORT] [-cors VALUE] DIRECTORY")
		}
		server := s2tiles.NewServer(dir, logger)
		logger.Printf("serving %s on HTTP port %s\n", dir, *port)
		logger.Fatal(http.ListenAndServe(":"+*port, server.Handler(*cors)))

	default:
		logger.Println("unrecognized command.")
		flag.PrintDefaults()
		os.Exit(1)
	}
}

func parseCompression(s string) (s2tiles.Compression, error) {
	switch s {
	case "none":
		return s2tiles.None, nil
	case "gzip":
		return s2tiles.Gzip, nil
	case "brotli":
		return s2tiles.Brotli, nil
	case "zstd":
		return s2tiles.Zstd, nil
	default:
		return s2tiles.Unknown, fmt.Errorf("unrecognized compression %q", s)
	}
}

func mustUint8(s string) uint8 {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		log.Fatalf("invalid integer %q", s)
	}
	return uint8(v)
}

func mustUint32(s string) uint32 {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		log.Fatalf("invalid integer %q", s)
	}
	return uint32(v)
}
