package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/meshlayer/internal/config"
	"github.com/Faultbox/meshlayer/internal/document"
	"github.com/Faultbox/meshlayer/internal/filter"
	"github.com/Faultbox/meshlayer/internal/logger"
	"github.com/Faultbox/meshlayer/internal/preview"
	"github.com/Faultbox/meshlayer/pkg/math"
	"github.com/Faultbox/meshlayer/pkg/mesh"
)

// gridSize is the number of cells per side of the generated mesh.
const gridSize = 8

func cmdFilters(w io.Writer) error {
	reg := filter.Builtin()
	for _, name := range reg.Names() {
		f, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		caps := f.Capabilities()
		fmt.Fprintf(w, "%-24s %s\n", name, f.Description())
		fmt.Fprintf(w, "%-24s requires=%s pre=%s post=%s dynamic=%t\n", "",
			caps.Requirements, caps.PreConditions, caps.PostConditions, mesh.IsDynamic(caps.PostConditions))
	}
	return nil
}

func cmdMask(w io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: mask <expression>")
	}
	m, err := mesh.ParseMaskExpression(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s (%#x, %d bits)\n", m, uint64(m), m.Count())
	return nil
}

func cmdRun(w io.Writer, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: run <filter[:k=v,...]>...")
	}
	runner, mm := newGridDocument(cfg)
	for _, arg := range args {
		f, p, err := parseInvocation(arg)
		if err != nil {
			return err
		}
		if err := runner.Run(f, p); err != nil {
			return err
		}
	}
	describe(w, mm)
	return nil
}

func cmdPreview(w io.Writer, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: preview <filter[:k=v,...]>")
	}
	if !cfg.Preview.Enabled {
		return errors.New("preview is disabled by configuration")
	}
	f, p, err := parseInvocation(args[0])
	if err != nil {
		return err
	}

	runner, mm := newGridDocument(cfg)
	s, err := preview.Start(runner, f, mm)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "before:")
	describe(w, mm)

	if err := s.Preview(p); err != nil {
		return err
	}
	fmt.Fprintln(w, "preview:")
	describe(w, mm)

	if err := s.Cancel(); err != nil {
		return err
	}
	fmt.Fprintln(w, "after cancel:")
	describe(w, mm)
	return nil
}

// parseInvocation splits "name:k=v,k=v" into a filter and its parameters.
func parseInvocation(arg string) (filter.Filter, filter.Params, error) {
	name, rawParams, _ := strings.Cut(arg, ":")
	f, err := filter.Builtin().Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	p := filter.Params{}
	if rawParams == "" {
		return f, p, nil
	}
	for _, kv := range strings.Split(rawParams, ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, nil, fmt.Errorf("parameter %q of %s is not key=value", kv, name)
		}
		val, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("parameter %s of %s: %w", k, name, err)
		}
		p[k] = val
	}
	return f, p, nil
}

// newGridDocument creates a document holding one grid mesh, a gentle
// saddle over the unit square.
func newGridDocument(cfg *config.Config) (*filter.Runner, *document.MeshModel) {
	doc := document.New(cfg.Document)
	mm := doc.AddMesh("", "", true)
	m := mm.Mesh

	const n = gridSize
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			fx, fy := float32(x)/n, float32(y)/n
			m.AddVertex(math.Vec3{X: fx, Y: fy, Z: (fx - 0.5) * (fy - 0.5)})
		}
	}
	idx := func(x, y int) int { return y*(n+1) + x }
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			m.AddFace(idx(x, y), idx(x+1, y), idx(x+1, y+1))
			m.AddFace(idx(x, y), idx(x+1, y+1), idx(x, y+1))
		}
	}
	m.UpdateVertexNormals()
	m.UpdateBounds()

	sink := func(percent int, msg string) {
		logger.Sugar.Infof("%3d%% %s", percent, msg)
	}
	return filter.NewRunner(doc, cfg.Progress, sink), mm
}

func describe(w io.Writer, mm *document.MeshModel) {
	m := mm.Mesh
	fmt.Fprintf(w, "  %s: %d vertices, %d faces, %d/%d selected\n",
		mm.Label(), m.LiveVertexCount(), m.LiveFaceCount(), m.SelectedVertices, m.SelectedFaces)
	fmt.Fprintf(w, "  attributes: %s\n", m.EnabledMask())
	fmt.Fprintf(w, "  translation: %+v\n", m.Tr.Translation())
	if q := m.VertQualities(); len(q) > 0 {
		fmt.Fprintf(w, "  quality[0]=%g quality[last]=%g\n", q[0], q[len(q)-1])
	}
	if c := m.VertColors(); len(c) > 0 {
		fmt.Fprintf(w, "  color[0]=%v color[last]=%v\n", c[0], c[len(c)-1])
	}
}
