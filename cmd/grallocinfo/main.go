// Command grallocinfo prints the format and layout gralloc chooses for a
// buffer request.
//
// Usage:
//
//	grallocinfo -format NV12 -usage 0x800 -w 1920 -h 1080 -caps full
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/gralloc"
	"github.com/gogpu/gralloc/capability"
	"github.com/gogpu/gralloc/format"
	"github.com/gogpu/gralloc/usage"
)

func main() {
	var (
		formatName = flag.String("format", "RGBA_8888", "base format name or 0x id")
		usageHex   = flag.String("usage", "0x300", "usage bitmask")
		width      = flag.Uint("w", 1920, "buffer width")
		height     = flag.Uint("h", 1080, "buffer height")
		layers     = flag.Uint("layers", 1, "array layers")
		caps       = flag.String("caps", "none", "capabilities of non-CPU roles: none or full")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		gralloc.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	base, err := format.ParseBaseFormat(*formatName)
	if err != nil {
		log.Fatalf("grallocinfo: %v", err)
	}
	u, err := strconv.ParseUint(*usageHex, 0, 64)
	if err != nil {
		log.Fatalf("grallocinfo: usage %q: %v", *usageHex, err)
	}
	snap, err := snapshot(*caps)
	if err != nil {
		log.Fatalf("grallocinfo: %v", err)
	}

	a := gralloc.New(gralloc.WithSnapshot(snap))
	buf, err := a.Allocate(gralloc.BufferDescriptor{
		Width:  uint32(*width),
		Height: uint32(*height),
		Layers: uint32(*layers),
		Format: uint32(base),
		Usage:  usage.Usage(u),
	})
	if err != nil {
		log.Fatalf("grallocinfo: %v", err)
	}

	p := message.NewPrinter(language.English)
	p.Printf("request:      %v %dx%d usage %v\n", base, *width, *height, usage.Usage(u))
	p.Printf("producers:    %v\n", capability.Producers(usage.Usage(u)))
	p.Printf("consumers:    %v\n", capability.Consumers(usage.Usage(u)))
	p.Printf("format:       %v (internal %v)\n", buf.Format, buf.InternalFormat)
	p.Printf("layout:       %v tiled=%v multiplane=%v\n", buf.AllocType.Primary, buf.AllocType.Tiled, buf.AllocType.MultiPlane)
	p.Printf("pixel stride: %d\n", buf.PixelStride)
	p.Printf("size:         %d bytes\n", buf.Size)
	for i, pl := range buf.Planes {
		p.Printf("plane %d:      offset %d stride %d alloc %dx%d\n",
			i, pl.Offset, pl.ByteStride, pl.AllocWidth, pl.AllocHeight)
	}
}

func snapshot(name string) (capability.Snapshot, error) {
	snap := capability.DefaultSnapshot()
	switch name {
	case "none":
		return snap, nil
	case "full":
		for _, r := range capability.Roles() {
			if r != capability.CPU {
				snap = snap.With(r, capability.FullAFBC())
			}
		}
		return snap, nil
	}
	return snap, errors.Newf("unknown capability preset %q", name)
}
