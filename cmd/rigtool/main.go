// rigtool is a CLI utility for inspecting and posing rig files.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Faultbox/midgard-rig/internal/engine/skeleton"
	"github.com/Faultbox/midgard-rig/internal/logger"
	"github.com/Faultbox/midgard-rig/pkg/formats"
	"github.com/Faultbox/midgard-rig/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if os.Getenv("RIGTOOL_DEBUG") != "" {
		if err := logger.Init("debug", ""); err != nil {
			fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		}
		defer logger.Sync()
	}

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "bones":
		err = cmdBones(args)
	case "pose":
		err = cmdPose(args)
	case "sample":
		err = cmdSample(args)
	case "demo":
		err = cmdDemo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`rigtool - skeletal rig utility

Usage:
  rigtool <command> [options]

Commands:
  info <rig.yaml>                          Show hierarchy, meshes and clip summary
  bones <rig.yaml>                         List bones with index and offset
  pose [-t sec] [-globals] [-vertices] <rig.yaml>
                                           Print final bone transforms at a time
  sample [-node name] [-n steps] <rig.yaml>
                                           Sample one node's channel over a loop
  demo [-bones N] [-o file]                Write the built-in tube rig

Set RIGTOOL_DEBUG=1 for load diagnostics on stderr.

Examples:
  rigtool demo -o tube.rig.yaml
  rigtool pose -t 0.5 tube.rig.yaml
  rigtool sample -node Bone1 -n 8 tube.rig.yaml`)
}

func loadModel(fs *flag.FlagSet, usage string) (*skeleton.Model, error) {
	if fs.NArg() < 1 {
		return nil, fmt.Errorf("usage: rigtool %s", usage)
	}
	return skeleton.LoadFile(fs.Arg(0), skeleton.LoadOptions{})
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	m, err := loadModel(fs, "info <rig.yaml>")
	if err != nil {
		return err
	}
	printInfo(os.Stdout, m)
	return nil
}

func cmdBones(args []string) error {
	fs := flag.NewFlagSet("bones", flag.ExitOnError)
	fs.Parse(args)
	m, err := loadModel(fs, "bones <rig.yaml>")
	if err != nil {
		return err
	}
	printBones(os.Stdout, m)
	return nil
}

func cmdPose(args []string) error {
	fs := flag.NewFlagSet("pose", flag.ExitOnError)
	at := fs.Float64("t", 0, "Elapsed playback time in seconds")
	globals := fs.Bool("globals", false, "Print node global transforms instead of bone finals")
	vertices := fs.Bool("vertices", false, "Print CPU-skinned vertex positions")
	fs.Parse(args)

	m, err := loadModel(fs, "pose [-t sec] [-globals] [-vertices] <rig.yaml>")
	if err != nil {
		return err
	}
	tick := m.UpdateAt(float32(*at))
	fmt.Printf("t = %.3fs (tick %.3f)\n", *at, tick)

	switch {
	case *globals:
		printGlobals(os.Stdout, m, tick)
	case *vertices:
		printVertices(os.Stdout, m)
	default:
		printFinals(os.Stdout, m)
	}
	return nil
}

func cmdSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	node := fs.String("node", "", "Node to sample (default: first channel)")
	steps := fs.Int("n", 10, "Number of samples over one loop")
	fs.Parse(args)

	m, err := loadModel(fs, "sample [-node name] [-n steps] <rig.yaml>")
	if err != nil {
		return err
	}
	return printSamples(os.Stdout, m, *node, *steps)
}

func cmdDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	opts := formats.DefaultTubeRigOptions()
	bones := fs.Int("bones", opts.Bones, "Bones in the chain")
	out := fs.String("o", "", "Output file (default: stdout)")
	fs.Parse(args)

	opts.Bones = *bones
	data, err := formats.NewTubeRig(opts).Encode()
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d bones)\n", *out, opts.Bones)
	return nil
}

func printInfo(w io.Writer, m *skeleton.Model) {
	fmt.Fprintf(w, "Rig:      %s\n", m.Name)
	fmt.Fprintf(w, "Nodes:    %d\n", m.Root.Count())
	fmt.Fprintf(w, "Bones:    %d\n", m.Bones.Count())
	fmt.Fprintf(w, "Meshes:   %d\n", len(m.Meshes))
	if m.Clip != nil {
		fmt.Fprintf(w, "Clip:     %s (%d channels, %.1f ticks @ %.1f/s = %.2fs)\n",
			m.Clip.Name, len(m.Clip.Channels), m.Clip.Duration, m.Clip.TicksPerSecond, m.Clip.DurationSeconds())
	} else {
		fmt.Fprintln(w, "Clip:     (static)")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Hierarchy:")
	m.Root.Walk(func(n *skeleton.Node, depth int) {
		var tags []string
		if _, ok := m.Bones.Lookup(n.Name); ok {
			tags = append(tags, "bone")
		}
		if m.Clip.Channel(n.Name) != nil {
			tags = append(tags, "animated")
		}
		suffix := ""
		if len(tags) > 0 {
			suffix = " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Fprintf(w, "  %s%s%s\n", strings.Repeat("  ", depth), n.Name, suffix)
	})

	if len(m.Meshes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Meshes:")
		for _, mesh := range m.Meshes {
			fmt.Fprintf(w, "  %-16s %6d vertices %6d triangles skinned=%v\n",
				mesh.Name, len(mesh.Positions), len(mesh.Indices)/3, mesh.Skinned())
		}
	}
}

func printBones(w io.Writer, m *skeleton.Model) {
	for i, name := range m.Bones.Names() {
		off := m.Bones.Offset(i).Translation()
		fmt.Fprintf(w, "%3d  %-20s offset.t=%s\n", i, name, formatVec(off))
	}
}

func printFinals(w io.Writer, m *skeleton.Model) {
	for i, f := range m.BoneTransforms() {
		fmt.Fprintf(w, "%3d  %s\n", i, m.Bones.Name(i))
		printMatrix(w, f)
	}
}

func printGlobals(w io.Writer, m *skeleton.Model, tick float32) {
	globals := m.NodeGlobals(tick)
	m.Root.Walk(func(n *skeleton.Node, depth int) {
		fmt.Fprintf(w, "%s%s  t=%s\n", strings.Repeat("  ", depth), n.Name, formatVec(globals[n.Name].Translation()))
	})
}

func printVertices(w io.Writer, m *skeleton.Model) {
	var buf []math.Vec3
	for _, mesh := range m.Meshes {
		buf = mesh.SkinnedPositions(m.BoneTransforms(), buf)
		fmt.Fprintf(w, "%s:\n", mesh.Name)
		for i, p := range buf {
			fmt.Fprintf(w, "  %5d %s\n", i, formatVec(p))
		}
	}
}

func printSamples(w io.Writer, m *skeleton.Model, node string, steps int) error {
	if m.Clip == nil || len(m.Clip.Channels) == 0 {
		return fmt.Errorf("%s has no animation", m.Name)
	}
	if node == "" {
		names := make([]string, 0, len(m.Clip.Channels))
		for _, ch := range m.Clip.Channels {
			names = append(names, ch.Node)
		}
		sort.Strings(names)
		node = names[0]
	}
	ch := m.Clip.Channel(node)
	if ch == nil {
		return fmt.Errorf("no channel for node %q", node)
	}
	if steps < 1 {
		steps = 1
	}

	fmt.Fprintf(w, "%s: %d steps over %.1f ticks\n", node, steps, m.Clip.Duration)
	fmt.Fprintf(w, "%10s  %-28s  %-8s  %s\n", "tick", "position", "angle", "scale")
	for i := 0; i < steps; i++ {
		t := m.Clip.Duration * float32(i) / float32(steps)
		fmt.Fprintf(w, "%10.3f  %-28s  %8.4f  %s\n",
			t, formatVec(ch.SamplePosition(t)), ch.SampleRotation(t).Angle(), formatVec(ch.SampleScale(t)))
	}
	return nil
}

func printMatrix(w io.Writer, m math.Mat4) {
	for row := 0; row < 4; row++ {
		fmt.Fprintf(w, "     [%9.4f %9.4f %9.4f %9.4f]\n", m[row], m[4+row], m[8+row], m[12+row])
	}
}

func formatVec(v math.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
