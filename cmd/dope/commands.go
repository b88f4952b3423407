package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/born-ml/dope/internal/array"
	"github.com/born-ml/dope/internal/bounds"
	"github.com/born-ml/dope/internal/dope"
	"github.com/born-ml/dope/internal/memory"
	"github.com/born-ml/dope/internal/shm"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// numeric is the subset of element types the CLI can parse and print.
type numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func render(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func runLayout(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	fs.SetOutput(out)
	layoutFlag := fs.String("layout", "", "axes as low:high:stride,...")
	shapeFlag := fs.String("shape", "", "row-major extents, e.g. 2,3")
	dtypeFlag := fs.String("dtype", "float64", "element type")
	if err := fs.Parse(args); err != nil {
		return err
	}

	l, err := layoutFlags(*layoutFlag, *shapeFlag)
	if err != nil {
		return err
	}
	dt, ok := array.ParseDataType(*dtypeFlag)
	if !ok {
		return fmt.Errorf("unknown dtype %q", *dtypeFlag)
	}

	rows := make([][]string, l.Rank())
	for i := range l.Rank() {
		d := l.Axis(i)
		rows[i] = []string{strconv.Itoa(i), strconv.Itoa(d.Low), strconv.Itoa(d.High), strconv.Itoa(d.Stride)}
	}
	fmt.Fprintln(out, render([]string{"axis", "low", "high", "stride"}, rows))

	fmt.Fprintf(out, "rank:            %d\n", l.Rank())
	fmt.Fprintf(out, "elements:        %d\n", dope.NumElements(l))
	if lo, hi, ok := dope.Extent(l); ok {
		fmt.Fprintf(out, "extent:          [%d, %d] elements\n", lo, hi)
		if lo >= 0 {
			fmt.Fprintf(out, "bytes needed:    %d\n", (hi+1)*dt.Size())
		}
	}
	fmt.Fprintf(out, "non-overlapping: %t\n", dope.NonOverlapping(l))
	return nil
}

func runCreate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(out)
	fileFlag := fs.String("file", "", "file to create")
	layoutFlag := fs.String("layout", "", "axes as low:high:stride,...")
	shapeFlag := fs.String("shape", "", "row-major extents, e.g. 2,3")
	dtypeFlag := fs.String("dtype", "float64", "element type")
	iotaFlag := fs.Bool("iota", false, "store 0, 1, 2, ... in coordinate order instead of -fill")
	fillFlag := fs.Float64("fill", 0, "value stored in every element")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fileFlag == "" {
		return fmt.Errorf("-file is required")
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	l, err := layoutFlags(*layoutFlag, *shapeFlag)
	if err != nil {
		return err
	}
	lo, hi, ok := dope.Extent(l)
	if !ok || lo < 0 {
		return fmt.Errorf("layout %v addresses no storable elements", l)
	}

	dt, ok := array.ParseDataType(*dtypeFlag)
	if !ok {
		return fmt.Errorf("unknown dtype %q", *dtypeFlag)
	}
	size := (hi + 1) * dt.Size()

	seg, err := shm.Create(*fileFlag, size)
	if err != nil {
		return err
	}
	block, err := seg.Owned()
	if err != nil {
		_ = seg.Close()
		return err
	}
	logger.Info("created segment", zap.String("file", *fileFlag), zap.Int("bytes", size))

	opts := fillOptions{iota: *iotaFlag, value: *fillFlag}
	switch dt {
	case array.Int8:
		err = fillBlock[int8](block, l, opts)
	case array.Int16:
		err = fillBlock[int16](block, l, opts)
	case array.Int32:
		err = fillBlock[int32](block, l, opts)
	case array.Int64:
		err = fillBlock[int64](block, l, opts)
	case array.Int:
		err = fillBlock[int](block, l, opts)
	case array.Uint8:
		err = fillBlock[uint8](block, l, opts)
	case array.Uint16:
		err = fillBlock[uint16](block, l, opts)
	case array.Uint32:
		err = fillBlock[uint32](block, l, opts)
	case array.Uint64:
		err = fillBlock[uint64](block, l, opts)
	case array.Float32:
		err = fillBlock[float32](block, l, opts)
	case array.Float64:
		err = fillBlock[float64](block, l, opts)
	default:
		block.Release()
		return fmt.Errorf("dtype %s is not supported by create", dt)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "wrote %d bytes to %s\n", size, *fileFlag)
	return nil
}

type fillOptions struct {
	iota  bool
	value float64
}

// fillBlock takes over block; the segment behind it is closed when the view is released.
func fillBlock[T numeric](block *memory.Block, l dope.Layout, opts fillOptions) error {
	v, err := array.Compose[T](block, l)
	if err != nil {
		block.Release()
		return err
	}
	defer v.Release()

	if !opts.iota {
		v.Fill(T(opts.value))
		return nil
	}
	var n T
	dope.Each(l, func(coords []int) bool {
		v.Set(n, coords...)
		n++
		return true
	})
	return nil
}

func runInspect(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(out)
	fileFlag := fs.String("file", "", "file to map read-only")
	layoutFlag := fs.String("layout", "", "axes as low:high:stride,...")
	shapeFlag := fs.String("shape", "", "row-major extents, e.g. 2,3")
	dtypeFlag := fs.String("dtype", "float64", "element type")
	check := fs.Bool("check", false, "print - for elements outside the file and log them, instead of refusing the layout")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fileFlag == "" {
		return fmt.Errorf("-file is required")
	}

	logger, err := newLogger(*verbose || *check)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	l, err := layoutFlags(*layoutFlag, *shapeFlag)
	if err != nil {
		return err
	}
	dt, ok := array.ParseDataType(*dtypeFlag)
	if !ok {
		return fmt.Errorf("unknown dtype %q", *dtypeFlag)
	}

	seg, err := shm.Open(*fileFlag, false)
	if err != nil {
		return err
	}
	defer func() { _ = seg.Close() }()

	block, err := seg.Block()
	if err != nil {
		return err
	}

	var report bounds.RangeFunc
	if *check {
		report = bounds.Log(logger)
	}

	switch dt {
	case array.Int8:
		return printPlane[int8](out, block, l, report)
	case array.Int16:
		return printPlane[int16](out, block, l, report)
	case array.Int32:
		return printPlane[int32](out, block, l, report)
	case array.Int64:
		return printPlane[int64](out, block, l, report)
	case array.Int:
		return printPlane[int](out, block, l, report)
	case array.Uint8:
		return printPlane[uint8](out, block, l, report)
	case array.Uint16:
		return printPlane[uint16](out, block, l, report)
	case array.Uint32:
		return printPlane[uint32](out, block, l, report)
	case array.Uint64:
		return printPlane[uint64](out, block, l, report)
	case array.Float32:
		return printPlane[float32](out, block, l, report)
	case array.Float64:
		return printPlane[float64](out, block, l, report)
	default:
		return fmt.Errorf("dtype %s is not supported by inspect", dt)
	}
}

// printPlane prints the plane spanned by the last two axes, with all leading axes at their low bound.
// Without a reporter, a layout reaching past the file is refused up front.
// With one, elements outside the file are reported and printed as "-"; they are never read.
func printPlane[T numeric](out io.Writer, block *memory.Block, l dope.Layout, report bounds.RangeFunc) error {
	cv, err := array.ComposeConst[T](block, l)
	if err != nil {
		return err
	}
	defer cv.Release()

	if report == nil {
		if err := cv.Validate(); err != nil {
			return err
		}
	}

	elem := array.TypeOf[T]().Size()
	size := cv.Memory().Size()
	cell := func(coords []int) string {
		off := cv.Offset(coords...) * elem
		if off < 0 || off+elem > size {
			if report != nil {
				report(bounds.MemoryLabel, bounds.MemoryAxis, off, 0, size-elem+1)
			}
			return "-"
		}
		return fmt.Sprint(cv.Get(coords...))
	}

	rank := l.Rank()
	coords := make([]int, rank)
	for i := range rank {
		coords[i] = l.Axis(i).Low
	}

	if rank == 0 {
		fmt.Fprintln(out, cell(coords))
		return nil
	}

	cols := l.Axis(rank - 1)
	rowAxis := dope.Dope{Low: 0, High: 1}
	if rank >= 2 {
		rowAxis = l.Axis(rank - 2)
	}

	headers := []string{""}
	for c := cols.Low; c < cols.High; c++ {
		headers = append(headers, strconv.Itoa(c))
	}

	var rows [][]string
	for r := rowAxis.Low; r < rowAxis.High; r++ {
		if rank >= 2 {
			coords[rank-2] = r
		}
		row := []string{strconv.Itoa(r)}
		for c := cols.Low; c < cols.High; c++ {
			coords[rank-1] = c
			row = append(row, cell(coords))
		}
		rows = append(rows, row)
	}

	fmt.Fprintln(out, render(headers, rows))
	return nil
}
